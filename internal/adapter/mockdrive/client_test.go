package mockdrive

import (
	"context"
	"errors"
	"testing"

	"cloudstream/internal/domain"
)

func TestListChildrenRoot(t *testing.T) {
	c := NewClient()

	records, err := c.ListChildren(context.Background(), domain.RootFolderID)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("root listing = %d records, want the two folders", len(records))
	}
	for _, rec := range records {
		if rec.Kind() != domain.KindFolder {
			t.Errorf("root record %q is not a folder", rec.Name)
		}
	}
}

func TestListChildrenFolder(t *testing.T) {
	c := NewClient()

	records, err := c.ListChildren(context.Background(), "2")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("folder listing = %d records, want 2", len(records))
	}
	for _, rec := range records {
		if rec.Kind() != domain.KindVideo {
			t.Errorf("record %q is not a video", rec.Name)
		}
		if c.StreamURL(rec.ID) == "" {
			t.Errorf("video %q has no stream url", rec.Name)
		}
	}
}

func TestSearchByName(t *testing.T) {
	c := NewClient()

	records, err := c.SearchByName(context.Background(), "sintel")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].Name != "Sintel" {
		t.Errorf("search = %+v, want Sintel", records)
	}
}

func TestGetFileMiss(t *testing.T) {
	c := NewClient()

	if _, err := c.GetFile(context.Background(), "nope"); !errors.Is(err, domain.ErrItemNotFound) {
		t.Errorf("GetFile(nope) = %v, want ErrItemNotFound", err)
	}
}
