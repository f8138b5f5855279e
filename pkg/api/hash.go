package api

import (
	"encoding/hex"
	"sort"
	"strings"

	"github.com/zeebo/blake3"
)

// Hash returns a deterministic BLAKE3 hash of the document content.
// It includes ID, Path, Title, Body, Tags (sorted, lowercased) and the
// timestamps. The tree widget uses it as a stable node identity, so unchanged
// documents keep their expanded state across reloads.
func (d Doc) Hash() string {
	h := blake3.New()

	// NUL delimiters keep adjacent fields from colliding.
	h.Write([]byte(d.ID))
	h.Write([]byte{0})

	h.Write([]byte(d.Path))
	h.Write([]byte{0})

	h.Write([]byte(d.Title))
	h.Write([]byte{0})

	h.Write([]byte(d.Body))
	h.Write([]byte{0})

	sortedTags := append([]string(nil), d.Tags...)
	sort.Strings(sortedTags)
	for _, t := range sortedTags {
		h.Write([]byte(strings.ToLower(t)))
		h.Write([]byte{0})
	}
	h.Write([]byte{0}) // end of tags

	if !d.CreatedAt.IsZero() {
		h.Write([]byte(d.CreatedAt.UTC().Format(timeRFC3339Nano)))
	}
	h.Write([]byte{0})

	if !d.UpdatedAt.IsZero() {
		h.Write([]byte(d.UpdatedAt.UTC().Format(timeRFC3339Nano)))
	}

	sum := h.Sum(nil)
	return hex.EncodeToString(sum)
}

const timeRFC3339Nano = "2006-01-02T15:04:05.999999999Z07:00"
