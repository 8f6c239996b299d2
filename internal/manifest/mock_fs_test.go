package manifest

import (
	"io/fs"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockFileSystem mocks the domain.FileSystem interface
type MockFileSystem struct {
	mock.Mock
}

// Stat mocks file info lookup
func (m *MockFileSystem) Stat(path string) (fs.FileInfo, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(fs.FileInfo), args.Error(1)
}

// ReadFile mocks reading a whole file
func (m *MockFileSystem) ReadFile(path string) ([]byte, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// OverwriteFile mocks replacing a file's content
func (m *MockFileSystem) OverwriteFile(path string, data []byte) error {
	args := m.Called(path, data)
	return args.Error(0)
}

// fakeFileInfo is a minimal fs.FileInfo for mocked Stat calls
type fakeFileInfo struct {
	name string
	size int64
}

func (f fakeFileInfo) Name() string       { return f.name }
func (f fakeFileInfo) Size() int64        { return f.size }
func (f fakeFileInfo) Mode() fs.FileMode  { return 0644 }
func (f fakeFileInfo) ModTime() time.Time { return time.Time{} }
func (f fakeFileInfo) IsDir() bool        { return false }
func (f fakeFileInfo) Sys() any           { return nil }
