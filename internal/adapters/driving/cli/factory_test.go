package cli

import (
	"context"

	"github.com/PeterTheobald/instapaper-gdocs/internal/core/ports/driving"
)

// mockReorganizer implements driving.Reorganizer for testing.
type mockReorganizer struct {
	result *driving.ReorganizeResult
	err    error

	gotSource string
	gotTarget string
}

func (m *mockReorganizer) Reorganize(_ context.Context, sourceFolder, targetFolder string) (*driving.ReorganizeResult, error) {
	m.gotSource = sourceFolder
	m.gotTarget = targetFolder
	return m.result, m.err
}

// mockDownloader implements driving.Downloader for testing.
type mockDownloader struct {
	result *driving.DownloadResult
	err    error

	gotSource  string
	gotSaveDir string
}

func (m *mockDownloader) Download(_ context.Context, sourceFolder, saveDir string) (*driving.DownloadResult, error) {
	m.gotSource = sourceFolder
	m.gotSaveDir = saveDir
	return m.result, m.err
}

// mockServiceFactory implements ServiceFactory for testing.
type mockServiceFactory struct {
	reorganizer *mockReorganizer
	downloader  *mockDownloader
	buildErr    error
	authErr     error

	gotConfigPath string
	gotProgress   driving.ProgressFunc
}

func (m *mockServiceFactory) Reorganizer(_ context.Context, configPath string) (driving.Reorganizer, error) {
	m.gotConfigPath = configPath
	if m.buildErr != nil {
		return nil, m.buildErr
	}
	return m.reorganizer, nil
}

func (m *mockServiceFactory) Downloader(_ context.Context, configPath string, progress driving.ProgressFunc) (driving.Downloader, error) {
	m.gotConfigPath = configPath
	m.gotProgress = progress
	if m.buildErr != nil {
		return nil, m.buildErr
	}
	return m.downloader, nil
}

func (m *mockServiceFactory) Authenticate(_ context.Context, configPath string) error {
	m.gotConfigPath = configPath
	return m.authErr
}

// setupFactoryTest swaps in the given factory and returns a cleanup func.
func setupFactoryTest(f ServiceFactory) func() {
	old := serviceFactory
	serviceFactory = f
	return func() {
		serviceFactory = old
	}
}
