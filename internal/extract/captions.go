package extract

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/kkdai/youtube/v2"
	"golang.org/x/net/html"
)

// Track is one caption track offered by a video.
type Track struct {
	BaseURL      string
	LanguageCode string
	Auto         bool // generated by speech recognition
}

// TrackLister returns the caption tracks of a video.
type TrackLister interface {
	Tracks(ctx context.Context, videoURL string) ([]Track, error)
}

// YouTubeTracks lists caption tracks through the YouTube player API.
type YouTubeTracks struct {
	client *youtube.Client
}

func NewYouTubeTracks(httpClient *http.Client) *YouTubeTracks {
	return &YouTubeTracks{client: &youtube.Client{HTTPClient: httpClient}}
}

func (y *YouTubeTracks) Tracks(ctx context.Context, videoURL string) ([]Track, error) {
	video, err := y.client.GetVideoContext(ctx, videoURL)
	if err != nil {
		return nil, fmt.Errorf("load video: %w", err)
	}
	tracks := make([]Track, 0, len(video.CaptionTracks))
	for _, ct := range video.CaptionTracks {
		tracks = append(tracks, Track{
			BaseURL:      ct.BaseURL,
			LanguageCode: ct.LanguageCode,
			Auto:         ct.Kind == "asr",
		})
	}
	return tracks, nil
}

// PickTrack prefers a manually authored English track and falls back to
// an auto-generated one.
func PickTrack(tracks []Track) (Track, bool) {
	var auto *Track
	for i := range tracks {
		t := tracks[i]
		if !isEnglish(t.LanguageCode) {
			continue
		}
		if !t.Auto {
			return t, true
		}
		if auto == nil {
			auto = &tracks[i]
		}
	}
	if auto != nil {
		return *auto, true
	}
	return Track{}, false
}

func isEnglish(code string) bool {
	code = strings.ToLower(code)
	return code == "en" || strings.HasPrefix(code, "en-")
}

// Captions returns the spoken text of a video.
func (e *Extractor) Captions(ctx context.Context, videoURL string) (string, error) {
	tracks, err := e.tracks.Tracks(ctx, videoURL)
	if err != nil {
		return "", err
	}
	track, ok := PickTrack(tracks)
	if !ok {
		return "", ErrNoCaptions
	}
	body, _, err := e.get(ctx, track.BaseURL)
	if err != nil {
		return "", err
	}
	return ParseTranscript(bytes.NewReader(body))
}

// ParseTranscript turns a timed-text caption document into plain text,
// one caption per line. Both the <transcript><text> and the
// <timedtext><body><p> layouts are understood.
func ParseTranscript(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var lines []string
	var cur strings.Builder
	depth := 0

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse captions: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if depth > 0 {
				depth++
			} else if t.Name.Local == "text" || t.Name.Local == "p" {
				depth = 1
				cur.Reset()
			}
		case xml.CharData:
			if depth > 0 {
				cur.Write(t)
			}
		case xml.EndElement:
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				line := strings.Join(strings.Fields(html.UnescapeString(cur.String())), " ")
				if line != "" {
					lines = append(lines, line)
				}
			}
		}
	}
	if len(lines) == 0 {
		return "", ErrNoCaptions
	}
	return strings.Join(lines, "\n"), nil
}
