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

package config_test

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/fileopt/config"
	"github.com/sabouaram/fileopt/model"
)

var _ = Describe("Load", func() {
	It("falls back to defaults when nothing else is set", func() {
		v := viper.New()
		s, err := config.Load(v, "")
		Expect(err).ToNot(HaveOccurred())
		Expect(s.Recursive).To(BeTrue())
		Expect(s.PreserveMetadata).To(BeTrue())
		Expect(s.EncodeModeValue()).To(Equal(model.Pipe))
	})

	It("reads a YAML config file over defaults", func() {
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "fileopt.yaml")
		Expect(os.WriteFile(path, []byte("recursive: false\nnum_threads: 4\nencode_mode: parallel\n"), 0o644)).To(Succeed())

		v := viper.New()
		s, err := config.Load(v, path)
		Expect(err).ToNot(HaveOccurred())
		Expect(s.Recursive).To(BeFalse())
		Expect(s.NumThreads).To(Equal(uint(4)))
		Expect(s.EncodeModeValue()).To(Equal(model.Parallel))
	})

	It("rejects an unrecognized encode mode", func() {
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "fileopt.yaml")
		Expect(os.WriteFile(path, []byte("encode_mode: sideways\n"), 0o644)).To(Succeed())

		v := viper.New()
		_, err := config.Load(v, path)
		Expect(err).To(HaveOccurred())
	})

	It("rejects an unrecognized target format", func() {
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "fileopt.yaml")
		Expect(os.WriteFile(path, []byte("unencodable_target_format: not-a-format\n"), 0o644)).To(Succeed())

		v := viper.New()
		_, err := config.Load(v, path)
		Expect(err).To(HaveOccurred())
	})

	It("lets a bound flag win over the config file", func() {
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "fileopt.yaml")
		Expect(os.WriteFile(path, []byte("dry_run: false\n"), 0o644)).To(Succeed())

		v := viper.New()
		cmd := &cobra.Command{Use: "fileopt"}
		Expect(config.BindFlags(cmd, v)).To(Succeed())
		Expect(cmd.PersistentFlags().Set("dry-run", "true")).To(Succeed())

		s, err := config.Load(v, path)
		Expect(err).ToNot(HaveOccurred())
		Expect(s.DryRun).To(BeTrue())
	})
})

var _ = Describe("WriteDefaultYAML", func() {
	It("renders a YAML template a config file can start from", func() {
		var buf bytes.Buffer
		Expect(config.WriteDefaultYAML(&buf)).To(Succeed())

		var decoded map[string]interface{}
		Expect(yaml.Unmarshal(buf.Bytes(), &decoded)).To(Succeed())
		Expect(decoded["recursive"]).To(Equal(true))
		Expect(decoded["encode_mode"]).To(Equal("pipe"))
	})
})
