package git

import "github.com/projflow/projflow/internal/commit"

// Compile-time check that MockClient implements Client.
var _ Client = (*MockClient)(nil)

// MockClient is a configurable mock implementation of Client for testing.
// Each method is backed by a function field. If the function field is nil,
// the method returns sensible zero values.
type MockClient struct {
	TagListFunc      func() ([]string, error)
	LogFunc          func(commit.LogSetup) (commit.Log, error)
	AddFilesFunc     func(...string) error
	CommitFunc       func(string) error
	AnnotatedTagFunc func(string, string) error
	PushFunc         func(bool) error
	RemoteURLFunc    func(string) (string, error)
}

func (m *MockClient) TagList() ([]string, error) {
	if m.TagListFunc != nil {
		return m.TagListFunc()
	}
	return nil, nil
}

func (m *MockClient) Log(setup commit.LogSetup) (commit.Log, error) {
	if m.LogFunc != nil {
		return m.LogFunc(setup)
	}
	return commit.Log{}, nil
}

func (m *MockClient) AddFiles(paths ...string) error {
	if m.AddFilesFunc != nil {
		return m.AddFilesFunc(paths...)
	}
	return nil
}

func (m *MockClient) Commit(message string) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(message)
	}
	return nil
}

func (m *MockClient) AnnotatedTag(name, message string) error {
	if m.AnnotatedTagFunc != nil {
		return m.AnnotatedTagFunc(name, message)
	}
	return nil
}

func (m *MockClient) Push(followTags bool) error {
	if m.PushFunc != nil {
		return m.PushFunc(followTags)
	}
	return nil
}

func (m *MockClient) RemoteURL(name string) (string, error) {
	if m.RemoteURLFunc != nil {
		return m.RemoteURLFunc(name)
	}
	return "", nil
}
