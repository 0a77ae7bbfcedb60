package backup

import (
	"context"
	"fmt"
	"io"
	"time"

	log "github.com/sirupsen/logrus"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// GoogleDrive wraps the Drive API calls needed for workout backups.
// https://github.com/googleapis/google-api-go-client/blob/master/drive/v3/drive-gen.go
type GoogleDrive struct {
	service        *drive.Service
	shareWithEmail string
}

func NewGoogleDrive(ctx context.Context, credentialsJSON []byte, shareWithEmail string) (*GoogleDrive, error) {
	driveService, err := drive.NewService(ctx, option.WithCredentialsJSON(credentialsJSON))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve drive client: %w", err)
	}
	return &GoogleDrive{
		service:        driveService,
		shareWithEmail: shareWithEmail,
	}, nil
}

// EnsureFolder returns the ID of the named folder, creating it when missing.
func (g *GoogleDrive) EnsureFolder(ctx context.Context, name string) (string, error) {
	folderQuery := fmt.Sprintf(
		"mimeType = 'application/vnd.google-apps.folder' and trashed = false and name = '%s'",
		name,
	)
	found, err := g.service.
		Files.List().
		Q(folderQuery).
		Fields("files(id, name)").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("list folders: %w", err)
	}

	switch len(found.Files) {
	case 0:
		log.Debugf("backups folder %q not found, creating", name)
	case 1:
		return found.Files[0].Id, nil
	default:
		log.Warnf("found %d backups folders named %q, taking the first one", len(found.Files), name)
		return found.Files[0].Id, nil
	}

	folderMeta := &drive.File{
		Name:     name,
		MimeType: "application/vnd.google-apps.folder",
	}
	folder, err := g.service.
		Files.Create(folderMeta).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("create folder: %w", err)
	}

	g.shareFile(ctx, folder.Id)

	return folder.Id, nil
}

// ListBackups returns the backup files in the folder, in no particular order.
func (g *GoogleDrive) ListBackups(ctx context.Context, folderID string) ([]StoredBackup, error) {
	query := fmt.Sprintf(
		"'%s' in parents and mimeType != 'application/vnd.google-apps.folder' and trashed = false",
		folderID,
	)
	found, err := g.service.
		Files.List().
		Q(query).
		Fields("files(id, name, createdTime)").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("list backup files: %w", err)
	}

	backups := make([]StoredBackup, 0, len(found.Files))
	for _, f := range found.Files {
		createdAt, err := time.Parse(time.RFC3339, f.CreatedTime)
		if err != nil {
			log.Errorf("backup file %s: parse created time: %s", f.Name, err)
			continue
		}
		backups = append(backups, StoredBackup{
			ID:        f.Id,
			Name:      f.Name,
			CreatedAt: createdAt,
		})
	}

	return backups, nil
}

// Upload stores one backup file in the folder and returns its file ID.
func (g *GoogleDrive) Upload(ctx context.Context, folderID, name string, content io.Reader) (string, error) {
	fileMeta := &drive.File{
		Name: name,
		// https://developers.google.com/drive/api/v3/mime-types
		MimeType: "application/vnd.google-apps.file",
		Parents:  []string{folderID},
	}
	file, err := g.service.
		Files.Create(fileMeta).
		Fields("id, parents").
		Context(ctx).
		Media(content).
		Do()
	if err != nil {
		return "", fmt.Errorf("create backup file: %w", err)
	}

	g.shareFile(ctx, file.Id)

	return file.Id, nil
}

func (g *GoogleDrive) Delete(ctx context.Context, fileID string) error {
	if err := g.service.Files.Delete(fileID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete backup file: %w", err)
	}
	return nil
}

// shareFile grants read access to the configured account. Files created by
// the service account are otherwise visible to nobody else.
func (g *GoogleDrive) shareFile(ctx context.Context, fileID string) {
	if g.shareWithEmail == "" {
		return
	}
	permission := &drive.Permission{
		EmailAddress: g.shareWithEmail,
		Type:         "user",
		Role:         "reader",
	}
	if _, err := g.service.Permissions.Create(fileID, permission).Context(ctx).Do(); err != nil {
		log.Errorf("share backup file %s with %s: %s", fileID, g.shareWithEmail, err)
	}
}
