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

package orchestrator_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/fileopt/eventbus"
	"github.com/sabouaram/fileopt/logger"
	"github.com/sabouaram/fileopt/model"
	"github.com/sabouaram/fileopt/orchestrator"
	"github.com/sabouaram/fileopt/pool"
	"github.com/sabouaram/fileopt/processor"
)

// shrinkingCodec is a fake leaf Processor whose Recompress writes a
// strictly shorter file, so the commit rule always replaces.
type shrinkingCodec struct{}

func (shrinkingCodec) Name() string        { return "shrink" }
func (shrinkingCodec) CanExtract() bool    { return false }
func (shrinkingCodec) CanRecompress() bool { return true }
func (shrinkingCodec) Prepare(string, processor.Options) (*model.ContainerJob, error) {
	return nil, nil
}
func (shrinkingCodec) Recompress(in, out string, _ processor.Options) error {
	data, err := os.ReadFile(in)
	if err != nil {
		return err
	}
	return os.WriteFile(out, data[:len(data)/2], 0o644)
}
func (shrinkingCodec) Finalize(*model.ContainerJob, processor.Options) (bool, int64, error) {
	return false, 0, nil
}

// noopCodec never improves on the original, so the commit rule must skip.
type noopCodec struct{}

func (noopCodec) Name() string        { return "noop" }
func (noopCodec) CanExtract() bool    { return false }
func (noopCodec) CanRecompress() bool { return true }
func (noopCodec) Prepare(string, processor.Options) (*model.ContainerJob, error) {
	return nil, nil
}
func (noopCodec) Recompress(in, out string, _ processor.Options) error {
	data, err := os.ReadFile(in)
	if err != nil {
		return err
	}
	return os.WriteFile(out, data, 0o644)
}
func (noopCodec) Finalize(*model.ContainerJob, processor.Options) (bool, int64, error) {
	return false, 0, nil
}

type collectedEvents struct {
	mu        sync.Mutex
	completes []eventbus.FileProcessComplete
	skips     []eventbus.FileProcessSkipped
	analyzed  []eventbus.FileAnalyzeComplete
	unrouted  []eventbus.FileAnalyzeSkipped
}

var _ = Describe("Orchestrator", func() {
	var (
		reg  *processor.Registry
		bus  *eventbus.Bus
		pl   *pool.Pool
		log  logger.Logger
		coll *collectedEvents
		dir  string
	)

	BeforeEach(func() {
		reg = processor.NewRegistry()
		bus = eventbus.New()
		pl = pool.New(context.Background(), 2)
		log = logger.New(os.Stderr, logger.ErrorLevel)
		coll = &collectedEvents{}

		eventbus.Subscribe(bus, func(e eventbus.FileProcessComplete) {
			coll.mu.Lock()
			defer coll.mu.Unlock()
			coll.completes = append(coll.completes, e)
		})
		eventbus.Subscribe(bus, func(e eventbus.FileProcessSkipped) {
			coll.mu.Lock()
			defer coll.mu.Unlock()
			coll.skips = append(coll.skips, e)
		})
		eventbus.Subscribe(bus, func(e eventbus.FileAnalyzeComplete) {
			coll.mu.Lock()
			defer coll.mu.Unlock()
			coll.analyzed = append(coll.analyzed, e)
		})
		eventbus.Subscribe(bus, func(e eventbus.FileAnalyzeSkipped) {
			coll.mu.Lock()
			defer coll.mu.Unlock()
			coll.unrouted = append(coll.unrouted, e)
		})

		var err error
		dir, err = os.MkdirTemp("", "orch")
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		_ = os.RemoveAll(dir)
	})

	It("replaces the original when the codec strictly shrinks it", func() {
		reg.RegisterExtension(".shrink", shrinkingCodec{})
		path := filepath.Join(dir, "a.shrink")
		Expect(os.WriteFile(path, []byte("0123456789abcdef"), 0o644)).To(Succeed())

		o := orchestrator.New(reg, pl, bus, log, processor.Options{})
		o.Run(context.Background(), []string{path})

		Expect(coll.completes).To(HaveLen(1))
		Expect(coll.completes[0].Replaced).To(BeTrue())

		info, err := os.Stat(path)
		Expect(err).ToNot(HaveOccurred())
		Expect(info.Size()).To(BeNumerically("<", 16))
	})

	It("leaves the original untouched and publishes a skip when nothing shrinks", func() {
		reg.RegisterExtension(".noop", noopCodec{})
		path := filepath.Join(dir, "b.noop")
		Expect(os.WriteFile(path, []byte("same size in and out"), 0o644)).To(Succeed())

		o := orchestrator.New(reg, pl, bus, log, processor.Options{})
		o.Run(context.Background(), []string{path})

		Expect(coll.completes).To(BeEmpty())
		Expect(coll.skips).To(HaveLen(1))

		data, err := os.ReadFile(path)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(data)).To(Equal("same size in and out"))
	})

	It("publishes FileAnalyzeSkipped for a path with no registered processor", func() {
		path := filepath.Join(dir, "c.unknown")
		Expect(os.WriteFile(path, []byte("x"), 0o644)).To(Succeed())

		o := orchestrator.New(reg, pl, bus, log, processor.Options{})
		o.Run(context.Background(), []string{path})

		Expect(coll.unrouted).To(HaveLen(1))
		Expect(coll.unrouted[0].Path).To(Equal(path))
	})

	It("honors dry_run by never renaming over the original", func() {
		reg.RegisterExtension(".shrink", shrinkingCodec{})
		path := filepath.Join(dir, "d.shrink")
		Expect(os.WriteFile(path, []byte("0123456789abcdef"), 0o644)).To(Succeed())

		o := orchestrator.New(reg, pl, bus, log, processor.Options{DryRun: true})
		o.Run(context.Background(), []string{path})

		Expect(coll.completes).To(HaveLen(1))
		Expect(coll.completes[0].Replaced).To(BeFalse())

		data, err := os.ReadFile(path)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(data)).To(Equal("0123456789abcdef"))
	})
})
