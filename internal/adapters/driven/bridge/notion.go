package bridge

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jomei/notionapi"

	"github.com/custodia-labs/sift/internal/core/domain"
)

const (
	notionMaxFiles = 1000
	notionPageSize = 100
)

// notionLister lists the pages and databases shared with the integration.
type notionLister struct {
	httpClient *http.Client // nil uses the library default
	maxFiles   int
}

func newNotionLister() *notionLister {
	return &notionLister{maxFiles: notionMaxFiles}
}

func (l *notionLister) list(ctx context.Context, token string) ([]domain.RemoteFile, error) {
	var opts []notionapi.ClientOption
	if l.httpClient != nil {
		opts = append(opts, notionapi.WithHTTPClient(l.httpClient))
	}
	client := notionapi.NewClient(notionapi.Token(token), opts...)

	req := &notionapi.SearchRequest{PageSize: notionPageSize}
	var files []domain.RemoteFile
	for {
		resp, err := client.Search.Do(ctx, req)
		if err != nil {
			return files, fmt.Errorf("notion: search: %w", err)
		}

		for _, obj := range resp.Results {
			f, ok := notionFile(obj)
			if !ok {
				continue
			}
			files = append(files, f)
			if len(files) >= l.maxFiles {
				return files, nil
			}
		}

		if !resp.HasMore || resp.NextCursor == "" {
			return files, nil
		}
		req.StartCursor = resp.NextCursor
	}
}

func notionFile(obj notionapi.Object) (domain.RemoteFile, bool) {
	switch o := obj.(type) {
	case *notionapi.Page:
		return domain.RemoteFile{
			ID:      string(o.ID),
			Name:    pageTitle(o),
			Path:    pageTitle(o),
			URL:     o.URL,
			Service: domain.IntegrationNotion,
		}, true
	case *notionapi.Database:
		title := plainText(o.Title)
		return domain.RemoteFile{
			ID:      string(o.ID),
			Name:    title,
			Path:    title,
			URL:     o.URL,
			Service: domain.IntegrationNotion,
		}, true
	default:
		return domain.RemoteFile{}, false
	}
}

func pageTitle(p *notionapi.Page) string {
	for _, prop := range p.Properties {
		if t, ok := prop.(*notionapi.TitleProperty); ok {
			if s := plainText(t.Title); s != "" {
				return s
			}
		}
	}
	return "Untitled"
}

func plainText(rt []notionapi.RichText) string {
	var b strings.Builder
	for _, r := range rt {
		b.WriteString(r.PlainText)
	}
	return b.String()
}
