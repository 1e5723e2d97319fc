// Package extract locates the embedded JSON payload inside a saved
// profile page and pulls out the raw account, link and social-link data.
package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
)

// DataBlockID identifies the script element carrying the hydration payload.
const DataBlockID = "__NEXT_DATA__"

var (
	// ErrNoDataBlock means the document has no script element with the
	// expected id. The page was saved from something other than a profile
	// page, or the upstream markup changed.
	ErrNoDataBlock = errors.New("missing data block")

	// ErrBadPayload means the data block was found but its contents are
	// not valid JSON.
	ErrBadPayload = errors.New("malformed payload")

	// ErrBadShape means the JSON parsed but the expected
	// props -> pageProps path (or a required key under it) is absent.
	ErrBadShape = errors.New("unexpected payload shape")
)

// RawProfile carries the extracted but not yet normalized profile data.
// Links and Socials are kept as raw JSON values because individual entries
// are untrusted and may be of the wrong type entirely.
type RawProfile struct {
	Username  string
	AvatarURL string
	Socials   []json.RawMessage
	Links     []json.RawMessage
}

// account is the subset of the payload's account object we care about.
type account struct {
	Username          string `json:"username"`
	ProfilePictureURL string `json:"profilePictureUrl"`
}

// Profile parses the document text and returns the raw profile data from
// its embedded payload. Any failure here is fatal for the run: there is no
// fallback data source.
func Profile(document string) (*RawProfile, error) {
	payload, err := DataBlock(document)
	if err != nil {
		return nil, err
	}

	pageProps, err := walk(payload, "props", "pageProps")
	if err != nil {
		return nil, err
	}

	rawAccount, err := objectKey(pageProps, "account")
	if err != nil {
		return nil, err
	}
	var acct account
	if err := json.Unmarshal(rawAccount, &acct); err != nil {
		return nil, fmt.Errorf("%w: account is not an object", ErrBadShape)
	}

	rawSocials, err := objectKey(pageProps, "socialLinks")
	if err != nil {
		return nil, err
	}
	socials, err := rawArray(rawSocials, "socialLinks")
	if err != nil {
		return nil, err
	}

	rawLinks, err := objectKey(pageProps, "links")
	if err != nil {
		return nil, err
	}
	links, err := rawArray(rawLinks, "links")
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("username", acct.Username).
		Int("links", len(links)).
		Int("social_links", len(socials)).
		Msg("Payload extracted")

	return &RawProfile{
		Username:  acct.Username,
		AvatarURL: acct.ProfilePictureURL,
		Socials:   socials,
		Links:     links,
	}, nil
}

// DataBlock finds the marked script element and parses its text as JSON.
// goquery matches on the id attribute regardless of where it appears in
// the tag, and the selection's text runs up to the element's closing tag.
func DataBlock(document string) (json.RawMessage, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(document))
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	sel := doc.Find("script#" + DataBlockID).First()
	if sel.Length() == 0 {
		return nil, fmt.Errorf("%w: no script element with id %q", ErrNoDataBlock, DataBlockID)
	}

	text := strings.TrimSpace(sel.Text())
	if !json.Valid([]byte(text)) {
		return nil, fmt.Errorf("%w: data block is not valid JSON", ErrBadPayload)
	}

	return json.RawMessage(text), nil
}

// walk descends through nested objects along the given keys.
func walk(value json.RawMessage, keys ...string) (json.RawMessage, error) {
	for _, key := range keys {
		next, err := objectKey(value, key)
		if err != nil {
			return nil, err
		}
		value = next
	}
	return value, nil
}

// objectKey returns the value under key, failing if value is not an object
// or the key is absent. The payload's structure is assumed stable, so a
// missing key on the fixed path is a contract violation, not a per-entry
// defect.
func objectKey(value json.RawMessage, key string) (json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(value, &obj); err != nil {
		return nil, fmt.Errorf("%w: expected an object around %q", ErrBadShape, key)
	}
	v, ok := obj[key]
	if !ok {
		return nil, fmt.Errorf("%w: missing key %q", ErrBadShape, key)
	}
	return v, nil
}

func rawArray(value json.RawMessage, key string) ([]json.RawMessage, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal(value, &entries); err != nil {
		return nil, fmt.Errorf("%w: %q is not an array", ErrBadShape, key)
	}
	return entries, nil
}
