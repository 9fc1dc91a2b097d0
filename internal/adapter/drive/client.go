package drive

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"cloudstream/internal/domain"
	"golang.org/x/oauth2"
	gdrive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const (
	pageSize   = 100
	listFields = "nextPageToken, files(id, name, mimeType, size, createdTime, thumbnailLink, parents, description, shortcutDetails)"
	fileFields = "id, name, mimeType, size, createdTime, thumbnailLink, parents, description, shortcutDetails"

	mediaEndpoint = "https://www.googleapis.com/drive/v3/files"
)

// Client implements domain.DriveRepository against the Drive v3 API.
type Client struct {
	service *gdrive.Service
	session domain.Session
	logger  *slog.Logger
}

// NewClient creates a Drive client authenticated with the session token.
func NewClient(ctx context.Context, session domain.Session, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if !session.Valid() {
		return nil, domain.ErrAuthRequired
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: session.AccessToken,
		Expiry:      session.Expiry,
	})
	service, err := gdrive.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &Client{service: service, session: session, logger: logger}, nil
}

// ListChildren returns the direct children of a folder, folders first.
func (c *Client) ListChildren(ctx context.Context, folderID string) ([]domain.FileRecord, error) {
	if folderID == "" {
		folderID = "root"
	}
	query := fmt.Sprintf("'%s' in parents and trashed = false", escapeQueryTerm(folderID))
	return c.list(ctx, query, "folder, name")
}

// ListShared returns entries shared with the signed-in user.
func (c *Client) ListShared(ctx context.Context) ([]domain.FileRecord, error) {
	return c.list(ctx, "sharedWithMe = true and trashed = false", "folder, name")
}

// SearchByName returns non-trashed entries whose name contains query.
func (c *Client) SearchByName(ctx context.Context, query string) ([]domain.FileRecord, error) {
	q := fmt.Sprintf("name contains '%s' and trashed = false", escapeQueryTerm(query))
	return c.list(ctx, q, "")
}

func (c *Client) list(ctx context.Context, query, orderBy string) ([]domain.FileRecord, error) {
	var records []domain.FileRecord
	pageToken := ""

	for {
		call := c.service.Files.List().Context(ctx).
			Q(query).
			Fields(listFields).
			PageSize(pageSize).
			SupportsAllDrives(true).
			IncludeItemsFromAllDrives(true)
		if orderBy != "" {
			call = call.OrderBy(orderBy)
		}
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		fileList, err := call.Do()
		if err != nil {
			c.logger.Error("drive listing failed", "query", query, "error", err)
			return nil, mapAPIError(err)
		}

		for _, f := range fileList.Files {
			records = append(records, mapFile(f))
		}

		if fileList.NextPageToken == "" {
			break
		}
		pageToken = fileList.NextPageToken
	}

	c.logger.Debug("drive listing complete", "query", query, "count", len(records))
	return records, nil
}

// GetFile fetches a single record by id, used for shortcut resolution.
func (c *Client) GetFile(ctx context.Context, fileID string) (domain.FileRecord, error) {
	f, err := c.service.Files.Get(fileID).Context(ctx).
		Fields(fileFields).
		SupportsAllDrives(true).
		Do()
	if err != nil {
		return domain.FileRecord{}, mapAPIError(err)
	}
	return mapFile(f), nil
}

// Quota returns the account storage quota, or nil when Drive reports none.
func (c *Client) Quota(ctx context.Context) (*domain.Quota, error) {
	about, err := c.service.About.Get().Context(ctx).Fields("storageQuota").Do()
	if err != nil {
		return nil, mapAPIError(err)
	}
	if about.StorageQuota == nil {
		return nil, nil
	}
	return &domain.Quota{
		UsedBytes:  about.StorageQuota.Usage,
		TotalBytes: about.StorageQuota.Limit,
	}, nil
}

// StreamURL returns the direct media-fetch endpoint for a file. The bearer
// token rides as a query parameter so players can issue plain range
// requests; acknowledgeAbuse bypasses the scan warning on large files.
func (c *Client) StreamURL(fileID string) string {
	params := url.Values{}
	params.Set("alt", "media")
	params.Set("acknowledgeAbuse", "true")
	params.Set("access_token", c.session.AccessToken)
	return fmt.Sprintf("%s/%s?%s", mediaEndpoint, url.PathEscape(fileID), params.Encode())
}

// escapeQueryTerm escapes single quotes and backslashes in a Drive query term
func escapeQueryTerm(term string) string {
	term = strings.ReplaceAll(term, `\`, `\\`)
	return strings.ReplaceAll(term, `'`, `\'`)
}

// mapAPIError folds transport and API failures onto the domain sentinels.
func mapAPIError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 401, 403:
			return domain.ErrAuthRequired
		case 404:
			return domain.ErrItemNotFound
		}
	}
	return fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
}
