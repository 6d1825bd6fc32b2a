/*
 * MIT License
 *
 * Copyright (c) 2026 The fileopt Authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package processor

// RegisterLeafCodecs wires the single-file codecs this package ships into
// r. Container-family processors are registered separately by the
// container package, which depends on processor but must not be depended
// on by it.
func RegisterLeafCodecs(r *Registry) {
	r.RegisterMime("image/png", PngCodec{})
	r.RegisterExtension(".png", PngCodec{})

	r.RegisterMime("image/jpeg", JpegCodec{})
	r.RegisterExtension(".jpg", JpegCodec{})
	r.RegisterExtension(".jpeg", JpegCodec{})

	r.RegisterMime("application/gzip", GzipCodec{})
	r.RegisterMime("application/x-gzip", GzipCodec{})
	r.RegisterExtension(".gz", GzipCodec{})
	r.RegisterExtension(".tgz", GzipCodec{})

	r.RegisterMime("application/x-bzip2", Bzip2Codec{})
	r.RegisterExtension(".bz2", Bzip2Codec{})

	r.RegisterMime("application/x-xz", XzCodec{})
	r.RegisterExtension(".xz", XzCodec{})

	r.RegisterMime("application/x-lz4", Lz4Codec{})
	r.RegisterExtension(".lz4", Lz4Codec{})
}
