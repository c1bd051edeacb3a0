// Package app wires adapters, connectors and services together.
package app

import (
	"context"
	"fmt"

	"github.com/PeterTheobald/instapaper-gdocs/internal/adapters/driven/config/file"
	"github.com/PeterTheobald/instapaper-gdocs/internal/adapters/driving/oauth"
	"github.com/PeterTheobald/instapaper-gdocs/internal/connectors/google"
	"github.com/PeterTheobald/instapaper-gdocs/internal/connectors/google/drive"
	"github.com/PeterTheobald/instapaper-gdocs/internal/connectors/instapaper"
	"github.com/PeterTheobald/instapaper-gdocs/internal/core/ports/driven"
	"github.com/PeterTheobald/instapaper-gdocs/internal/core/ports/driving"
	"github.com/PeterTheobald/instapaper-gdocs/internal/core/services"
	"github.com/PeterTheobald/instapaper-gdocs/internal/logger"
)

// Factory builds authenticated pipeline services from a credentials file.
// It satisfies the CLI's ServiceFactory interface.
type Factory struct{}

// NewFactory creates a Factory.
func NewFactory() *Factory {
	return &Factory{}
}

// Reorganizer builds a fully wired reorganize service.
func (f *Factory) Reorganizer(ctx context.Context, configPath string) (driving.Reorganizer, error) {
	source, docs, err := f.connect(ctx, configPath)
	if err != nil {
		return nil, err
	}
	return services.NewReorganizer(source, docs), nil
}

// Downloader builds a fully wired download service.
func (f *Factory) Downloader(ctx context.Context, configPath string, progress driving.ProgressFunc) (driving.Downloader, error) {
	source, docs, err := f.connect(ctx, configPath)
	if err != nil {
		return nil, err
	}
	svc := services.NewDownloader(source, docs)
	svc.Progress = progress
	return svc, nil
}

// Authenticate verifies both API credentials, running the Google OAuth
// consent flow if no cached token exists.
func (f *Factory) Authenticate(ctx context.Context, configPath string) error {
	_, _, err := f.connect(ctx, configPath)
	return err
}

// connect loads credentials and opens authenticated clients for both APIs.
func (f *Factory) connect(ctx context.Context, configPath string) (driven.BookmarkSource, driven.DocumentFetcher, error) {
	creds, err := file.LoadCredentials(configPath)
	if err != nil {
		return nil, nil, err
	}

	logger.Debug("signing in to Instapaper as %s", creds.InstapaperUsername)
	source, err := instapaper.Authenticate(ctx, instapaper.Credentials{
		ConsumerKey:    creds.InstapaperConsumerKey,
		ConsumerSecret: creds.InstapaperConsumerSecret,
		Username:       creds.InstapaperUsername,
		Password:       creds.InstapaperPassword,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("instapaper sign-in: %w", err)
	}

	gcfg, err := google.LoadClientConfig(creds.GoogleCredentialsPath)
	if err != nil {
		return nil, nil, err
	}

	tokenPath := creds.GoogleAuthorizedUserPath
	if tokenPath == "" {
		tokenPath = google.DefaultTokenPath
	}

	ts, err := google.TokenSource(ctx, gcfg, tokenPath, oauth.Authorize)
	if err != nil {
		return nil, nil, err
	}

	svc, err := google.NewDriveService(ctx, ts)
	if err != nil {
		return nil, nil, err
	}

	return source, drive.NewFetcher(svc), nil
}
