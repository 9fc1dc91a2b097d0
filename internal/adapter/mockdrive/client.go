// Package mockdrive is a credential-less listing source backed by a small
// in-memory catalog of public sample videos. It lets the app run end to end
// before any Drive client is configured.
package mockdrive

import (
	"context"
	"strings"

	"cloudstream/internal/domain"
)

const sampleBase = "http://commondatastorage.googleapis.com/gtv-videos-bucket/sample"

// Client implements domain.DriveRepository over the demo catalog.
type Client struct {
	files []domain.FileRecord
	urls  map[string]string
}

// NewClient creates the demo source.
func NewClient() *Client {
	c := &Client{urls: make(map[string]string)}
	c.seed()
	return c
}

func (c *Client) add(rec domain.FileRecord, url string) {
	c.files = append(c.files, rec)
	if url != "" {
		c.urls[rec.ID] = url
	}
}

func (c *Client) seed() {
	c.add(domain.FileRecord{ID: "1", Name: "My Recordings", MIMEType: domain.MIMEFolder}, "")
	c.add(domain.FileRecord{ID: "2", Name: "Movies", MIMEType: domain.MIMEFolder}, "")

	c.add(domain.FileRecord{
		ID: "11", ParentID: "1", Name: "Big Buck Bunny", MIMEType: "video/mp4",
		SizeLabel:   "150 MB",
		Description: "A large rabbit deals with three bullying rodents.",
	}, sampleBase+"/BigBuckBunny.mp4")
	c.add(domain.FileRecord{
		ID: "12", ParentID: "1", Name: "Elephant Dream", MIMEType: "video/mp4",
		SizeLabel:   "120 MB",
		Description: "Two characters explore a strange mechanical machine world.",
	}, sampleBase+"/ElephantsDream.mp4")
	c.add(domain.FileRecord{
		ID: "21", ParentID: "2", Name: "Sintel", MIMEType: "video/mp4",
		SizeLabel:   "210 MB",
		Description: "A lonely young woman searches for a pet dragon she befriended.",
	}, sampleBase+"/Sintel.mp4")
	c.add(domain.FileRecord{
		ID: "22", ParentID: "2", Name: "Tears of Steel", MIMEType: "video/mp4",
		SizeLabel:   "300 MB",
		Description: "Warriors and scientists gather in a future Amsterdam to save the world from robots.",
	}, sampleBase+"/TearsOfSteel.mp4")
}

func (c *Client) ListChildren(_ context.Context, folderID string) ([]domain.FileRecord, error) {
	if folderID == domain.RootFolderID {
		folderID = ""
	}
	var out []domain.FileRecord
	for _, f := range c.files {
		if f.ParentID == folderID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (c *Client) ListShared(context.Context) ([]domain.FileRecord, error) {
	return nil, nil
}

func (c *Client) SearchByName(_ context.Context, query string) ([]domain.FileRecord, error) {
	query = strings.ToLower(query)
	var out []domain.FileRecord
	for _, f := range c.files {
		if strings.Contains(strings.ToLower(f.Name), query) {
			out = append(out, f)
		}
	}
	return out, nil
}

func (c *Client) GetFile(_ context.Context, fileID string) (domain.FileRecord, error) {
	for _, f := range c.files {
		if f.ID == fileID {
			return f, nil
		}
	}
	return domain.FileRecord{}, domain.ErrItemNotFound
}

func (c *Client) Quota(context.Context) (*domain.Quota, error) {
	return nil, nil
}

func (c *Client) StreamURL(fileID string) string {
	return c.urls[fileID]
}
