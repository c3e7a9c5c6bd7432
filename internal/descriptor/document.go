package descriptor

import (
	"bytes"
	"fmt"
	"time"

	"github.com/beevik/etree"

	"xmlcreator/internal/metadata"
)

const (
	// ProfileUID is the fixed encoding profile every descriptor references.
	ProfileUID = "5afbb2681e654c9eb1ffa17a741b44e8"

	// TimestampLayout matches ISO-8601 with microseconds and a numeric offset.
	TimestampLayout = "2006-01-02T15:04:05.000000-07:00"

	statusUnencoded = "Unencoded"
	actionInsert    = "INSERT"
	languageEnglish = "en"
)

// NewDocument assembles the asset descriptor for rec. launched is used for
// createDateTime, launchDateTime and the profile launchDateTime.
func NewDocument(rec metadata.Record, uniqueID string, launched time.Time) *etree.Document {
	stamp := launched.Format(TimestampLayout)

	doc := etree.NewDocument()
	// Newlines, carriage returns and tabs in attribute values must survive
	// attribute-value normalization, so they are written as character references.
	doc.WriteSettings.CanonicalAttrVal = true
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)

	assets := doc.CreateElement("assets")
	asset := assets.CreateElement("asset")
	asset.CreateAttr("language", languageEnglish)
	asset.CreateAttr("description", rec.Description)
	asset.CreateAttr("title", rec.Title)
	asset.CreateAttr("baseFileName", rec.Filename)
	asset.CreateAttr("uniqueId", uniqueID)
	asset.CreateAttr("launchDateTime", stamp)
	asset.CreateAttr("createDateTime", stamp)
	asset.CreateAttr("status", statusUnencoded)
	asset.CreateAttr("action", actionInsert)

	profile := asset.CreateElement("profiles").CreateElement("profile")
	profile.CreateAttr("launchDateTime", stamp)
	profile.CreateAttr("uid", ProfileUID)

	file := asset.CreateElement("files").CreateElement("file")
	file.CreateAttr("fileName", rec.Filename)
	file.CreateAttr("uploaded", "true")

	rightsEl := asset.CreateElement("rights")
	for _, right := range rec.Rights {
		rightsEl.CreateElement("right").CreateAttr("name", right)
	}

	keywordsEl := asset.CreateElement("keywords")
	for _, keyword := range rec.Keywords {
		keywordsEl.CreateElement("keyword").CreateAttr("text", keyword)
	}

	doc.Indent(2)
	return doc
}

// Render serializes the descriptor for rec to UTF-8 bytes ending in a newline.
func Render(rec metadata.Record, launched time.Time) ([]byte, error) {
	doc := NewDocument(rec, UniqueID(rec.Filename), launched)
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("serialize descriptor: %w", err)
	}
	out := buf.Bytes()
	if !bytes.HasSuffix(out, []byte("\n")) {
		out = append(out, '\n')
	}
	return out, nil
}
