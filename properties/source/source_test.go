// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build !integration

package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"rivaas.dev/logservice/properties"
	"rivaas.dev/logservice/properties/codec"
)

type FileTestSuite struct {
	suite.Suite
	dir string
}

func TestFileTestSuite(t *testing.T) {
	suite.Run(t, new(FileTestSuite))
}

func (s *FileTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
}

func (s *FileTestSuite) write(name, content string) string {
	path := filepath.Join(s.dir, name)
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o600))
	return path
}

func (s *FileTestSuite) TestLoad_YAMLFile() {
	path := s.write("logging.yaml", "lh:\n  console:\n    level: debug\n    color: true\n")

	conf, err := NewFile(path, codec.YAMLCodec{}).Load(context.Background())
	s.Require().NoError(err)

	p, err := properties.FromMap(conf)
	s.Require().NoError(err)
	s.Equal("debug", p.GetOr("lh.console.level", ""))
	s.Equal("true", p.GetOr("lh.console.color", ""))
}

func (s *FileTestSuite) TestLoad_TOMLContent() {
	content := []byte("[lh.console]\nlevel = \"warn\"\ncolor = false\n")

	conf, err := NewFileContent(content, codec.TOMLCodec{}).Load(context.Background())
	s.Require().NoError(err)

	p, err := properties.FromMap(conf)
	s.Require().NoError(err)
	s.Equal("warn", p.GetOr("lh.console.level", ""))
	s.Equal("false", p.GetOr("lh.console.color", ""))
}

func (s *FileTestSuite) TestLoad_MissingFile() {
	_, err := NewFile(filepath.Join(s.dir, "missing.yaml"), codec.YAMLCodec{}).Load(context.Background())
	s.Error(err)
	s.Contains(err.Error(), "failed to read file")
}

func (s *FileTestSuite) TestLoad_DecodeError() {
	_, err := NewFileContent([]byte("{not json"), codec.JSONCodec{}).Load(context.Background())
	s.Error(err)
	s.Contains(err.Error(), "failed to decode file")
}

type OSEnvVarTestSuite struct {
	suite.Suite
}

func TestOSEnvVarTestSuite(t *testing.T) {
	suite.Run(t, new(OSEnvVarTestSuite))
}

func (s *OSEnvVarTestSuite) TestLoad_StripsPrefix() {
	s.T().Setenv("LOGSVCTEST_LH_CONSOLE_LEVEL", "debug")
	s.T().Setenv("LOGSVCTEST_LH_CONSOLE_COLOR", "true")
	s.T().Setenv("OTHER_LH_CONSOLE_LEVEL", "error")

	conf, err := NewOSEnvVar("LOGSVCTEST_").Load(context.Background())
	s.Require().NoError(err)

	p, err := properties.FromMap(conf)
	s.Require().NoError(err)
	s.Equal(2, p.Len())
	s.Equal("debug", p.GetOr("lh.console.level", ""))
	s.Equal("true", p.GetOr("lh.console.color", ""))
}

func (s *OSEnvVarTestSuite) TestLoad_InjectedEnviron() {
	src := NewOSEnvVar("APP_", WithEnviron(func() []string {
		return []string{"APP_LH_CONSOLE_OUTPUT=stderr", "PATH=/bin"}
	}))

	conf, err := src.Load(context.Background())
	s.Require().NoError(err)

	lh, ok := conf["lh"].(map[string]any)
	s.Require().True(ok)
	console, ok := lh["console"].(map[string]any)
	s.Require().True(ok)
	s.Equal("stderr", console["output"])
	s.NotContains(conf, "path")
}

func TestLoad_LaterSourcesOverride(t *testing.T) {
	t.Parallel()

	yamlSrc := NewFileContent([]byte("lh:\n  console:\n    level: info\n    color: true\n"), codec.YAMLCodec{})
	envSrc := NewOSEnvVar("APP_", WithEnviron(func() []string { return []string{"APP_LH_CONSOLE_LEVEL=error"} }))

	p, err := properties.Load(context.Background(), yamlSrc, envSrc)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := p.GetOr("lh.console.level", ""); got != "error" {
		t.Errorf("lh.console.level = %q, want error", got)
	}
	if got := p.GetOr("lh.console.color", ""); got != "true" {
		t.Errorf("lh.console.color = %q, want true", got)
	}
}
