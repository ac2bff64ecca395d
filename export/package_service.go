package export

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// PackageService assembles the complete downloadable bundle: the rendered
// presentation plus the derived text artifacts, zipped with deterministic
// entry names. The whole archive lives in memory for the request and is
// discarded once streamed.
type PackageService struct {
	presentations *PresentationService
}

func NewPackageService(presentations *PresentationService) *PackageService {
	if presentations == nil {
		presentations = NewPresentationService()
	}
	return &PackageService{presentations: presentations}
}

// PackageMetadata is stored unencrypted next to a protected payload so
// bundles remain listable without the password.
type PackageMetadata struct {
	ProjectName string `json:"projectName"`
	TemplateID  int    `json:"templateId"`
	CreatedAt   string `json:"createdAt"`
	Encrypted   bool   `json:"encrypted"`
}

// BuildArchive renders the presentation, derives the three text artifacts
// and zips everything. When password is non-empty the inner bundle is
// AES-256-GCM encrypted (scrypt key derivation) and wrapped in an outer
// zip next to plaintext metadata.
//
// Any generation failure aborts the whole export; there is no
// partial-archive delivery.
func (s *PackageService) BuildArchive(project *ProjectContent, password string) ([]byte, string, error) {
	themeID := 1
	name := ""
	if project != nil {
		themeID = ResolveThemeID(project.TemplateID)
		name = project.Name
	}
	base := SanitizeBaseName(name)

	document, docName, err := s.presentations.Generate(project)
	if err != nil {
		return nil, "", fmt.Errorf("build archive: %w", err)
	}

	normalized := Normalize(project)
	bundle, err := buildZip([]zipEntry{
		{name: docName, data: document},
		{name: "emails.txt", data: []byte(RenderEmailsText(normalized))},
		{name: "video_script.txt", data: []byte(RenderVideoScriptText(normalized))},
		{name: "faqs.txt", data: []byte(RenderFAQsText(normalized))},
	})
	if err != nil {
		return nil, "", fmt.Errorf("build archive: %w", err)
	}

	archiveName := base + "_Complete_Package.zip"
	if password == "" {
		return bundle, archiveName, nil
	}

	protected, err := s.protect(bundle, password, PackageMetadata{
		ProjectName: name,
		TemplateID:  themeID,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		Encrypted:   true,
	})
	if err != nil {
		return nil, "", fmt.Errorf("build archive: %w", err)
	}
	return protected, archiveName, nil
}

type zipEntry struct {
	name string
	data []byte
}

func buildZip(entries []zipEntry) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, entry := range entries {
		w, err := zw.Create(entry.name)
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("create zip entry %s: %w", entry.name, err)
		}
		if _, err := w.Write(entry.data); err != nil {
			zw.Close()
			return nil, fmt.Errorf("write zip entry %s: %w", entry.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close zip: %w", err)
	}
	return buf.Bytes(), nil
}

// protect wraps an inner bundle as {package.bin (encrypted), metadata.json}.
func (s *PackageService) protect(bundle []byte, password string, meta PackageMetadata) ([]byte, error) {
	payload, err := encryptPayload(bundle, password)
	if err != nil {
		return nil, err
	}
	metaJSON, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}
	return buildZip([]zipEntry{
		{name: encryptedEntryName, data: payload},
		{name: metadataEntryName, data: metaJSON},
	})
}

// OpenArchive reads back a bundle produced by BuildArchive, decrypting the
// inner payload when it is protected. A password is required iff the
// archive carries an encrypted entry.
func OpenArchive(data []byte, password string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, ErrInvalidArchive
	}

	var encrypted *zip.File
	for _, f := range zr.File {
		if f.Name == encryptedEntryName {
			encrypted = f
			break
		}
	}
	if encrypted == nil {
		return data, nil
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	rc, err := encrypted.Open()
	if err != nil {
		return nil, ErrInvalidArchive
	}
	defer rc.Close()
	var payload bytes.Buffer
	if _, err := payload.ReadFrom(rc); err != nil {
		return nil, ErrInvalidArchive
	}
	return decryptPayload(payload.Bytes(), password)
}
