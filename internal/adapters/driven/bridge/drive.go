package bridge

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/custodia-labs/sift/internal/core/domain"
)

const (
	driveRate     = 8.0
	driveBurst    = 10
	driveMaxFiles = 2000
	drivePageSize = 100

	mimeFolder = "application/vnd.google-apps.folder"
)

// driveLister lists non-folder files in the user's Google Drive, most
// recently modified first.
type driveLister struct {
	endpoint string // API root override, empty for the public endpoint
	limiter  *rateLimiter
	maxFiles int
}

func newDriveLister() *driveLister {
	return &driveLister{
		limiter:  newRateLimiter(driveRate, driveBurst),
		maxFiles: driveMaxFiles,
	}
}

func (l *driveLister) service(ctx context.Context, token string) (*drive.Service, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	opts := []option.ClientOption{option.WithHTTPClient(oauth2.NewClient(ctx, ts))}
	if l.endpoint != "" {
		opts = append(opts, option.WithEndpoint(l.endpoint))
	}
	svc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("drive: create service: %w", err)
	}
	return svc, nil
}

func (l *driveLister) list(ctx context.Context, token string) ([]domain.RemoteFile, error) {
	svc, err := l.service(ctx, token)
	if err != nil {
		return nil, err
	}

	call := svc.Files.List().
		Q("trashed = false and mimeType != '" + mimeFolder + "'").
		Fields("nextPageToken, files(id, name, mimeType, webViewLink)").
		OrderBy("modifiedTime desc").
		PageSize(drivePageSize)

	var (
		files     []domain.RemoteFile
		pageToken string
	)
	for {
		if err := l.limiter.wait(ctx); err != nil {
			return files, err
		}
		res, err := call.PageToken(pageToken).Context(ctx).Do()
		if err != nil {
			return files, l.wrapError(err)
		}

		for _, f := range res.Files {
			files = append(files, domain.RemoteFile{
				ID:      f.Id,
				Name:    f.Name,
				Path:    f.Name,
				URL:     f.WebViewLink,
				Service: domain.IntegrationGoogle,
			})
			if len(files) >= l.maxFiles {
				return files, nil
			}
		}

		if res.NextPageToken == "" {
			return files, nil
		}
		pageToken = res.NextPageToken
	}
}

func (l *driveLister) wrapError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusTooManyRequests:
			l.limiter.backoff(0)
			return fmt.Errorf("drive: rate limited: %w", err)
		case http.StatusUnauthorized:
			return fmt.Errorf("drive: %w", domain.ErrNotAuthenticated)
		}
	}
	return fmt.Errorf("drive: list files: %w", err)
}
