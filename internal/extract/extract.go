package extract

import (
	"context"
	"errors"
	"net"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ehrlich-b/ask/internal/logger"
)

var (
	ErrNoText      = errors.New("no text found")
	ErrUnsupported = errors.New("unsupported document type")
	ErrNoCaptions  = errors.New("no english captions")
)

// Kind is how a source given to `open` is read.
type Kind int

const (
	KindDocument Kind = iota
	KindTextFile
	KindWebPage
	KindVideo
)

func (k Kind) String() string {
	switch k {
	case KindTextFile:
		return "text-file"
	case KindWebPage:
		return "web-page"
	case KindVideo:
		return "video"
	default:
		return "document"
	}
}

var videoURL = regexp.MustCompile(`(?i)^https?://((www|m|music)\.)?(youtube\.com/(watch|shorts/|live/|embed/)|youtu\.be/)`)

var textExtensions = map[string]bool{
	".txt":      true,
	".text":     true,
	".md":       true,
	".markdown": true,
	".rst":      true,
	".csv":      true,
	".log":      true,
}

// Classify decides how a source will be read.
func Classify(source string) Kind {
	lower := strings.ToLower(source)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		if videoURL.MatchString(source) {
			return KindVideo
		}
		return KindWebPage
	}
	if textExtensions[extension(lower)] {
		return KindTextFile
	}
	return KindDocument
}

func extension(path string) string {
	i := strings.LastIndexAny(path, "./\\")
	if i < 0 || path[i] != '.' {
		return ""
	}
	return path[i:]
}

// Extractor reads text out of files, web pages and video captions.
type Extractor struct {
	client *http.Client
	tracks TrackLister
}

// New returns an Extractor whose HTTP requests give up after timeout.
func New(timeout time.Duration) *Extractor {
	client := &http.Client{Timeout: timeout}
	return &Extractor{
		client: client,
		tracks: NewYouTubeTracks(client),
	}
}

// Extract returns the text behind source. Every failure, whether a
// network error, a missing caption track or an empty page, is reported as
// ok=false; the cause only goes to the log.
func (e *Extractor) Extract(ctx context.Context, source string) (string, bool) {
	kind := Classify(source)

	var text string
	var err error
	switch kind {
	case KindVideo:
		text, err = e.Captions(ctx, source)
	case KindWebPage:
		text, err = e.FromURL(ctx, source)
	default:
		text, err = FromPath(source)
	}
	if err == nil && strings.TrimSpace(text) == "" {
		err = ErrNoText
	}
	if err != nil {
		logger.Warn("extraction failed",
			"source", source,
			"kind", kind,
			"error", err,
			"transient", isTransient(err))
		return "", false
	}

	if !utf8.ValidString(text) {
		logger.Debug("replacing invalid utf-8", "source", source)
		text = strings.ToValidUTF8(text, "\uFFFD")
	}
	logger.Info("extracted text", "source", source, "kind", kind, "chars", len(text))
	return strings.TrimSpace(text), true
}

func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
