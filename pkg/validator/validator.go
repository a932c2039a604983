package validator

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

const MaxTitleLength = 120

var (
	ErrInvalidTitle      = fmt.Errorf("invalid title")
	ErrInvalidVideoPath  = fmt.Errorf("invalid video path")
	ErrInvalidUUID       = fmt.Errorf("invalid UUID format")
	ErrInvalidPagination = fmt.Errorf("invalid pagination parameters")
)

var (
	unixAbsPath    = regexp.MustCompile(`^/[^*?"<>|]+$`)
	windowsAbsPath = regexp.MustCompile(`^[A-Za-z]:\\[^*?"<>|]+$`)
	relativePath   = regexp.MustCompile(`^\.(\.)?[/\\][^*?"<>|]+$`)
)

// NormalizeTitle trims the title, checks its length and then collapses inner
// whitespace runs (any Unicode space) to a single space.
func NormalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("%w: title must not be empty", ErrInvalidTitle)
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return "", fmt.Errorf("%w: title cannot exceed %d characters", ErrInvalidTitle, MaxTitleLength)
	}
	return strings.Join(strings.Fields(title), " "), nil
}

// NormalizeVideoPath accepts an http(s) URL with a host, an absolute Unix or
// Windows path, or a path relative to ./ or ../.
func NormalizeVideoPath(videoPath string) (string, error) {
	videoPath = strings.TrimSpace(videoPath)
	if videoPath == "" {
		return "", fmt.Errorf("%w: video_path is required", ErrInvalidVideoPath)
	}

	if IsHTTPURL(videoPath) {
		return videoPath, nil
	}

	if unixAbsPath.MatchString(videoPath) ||
		windowsAbsPath.MatchString(videoPath) ||
		relativePath.MatchString(videoPath) {
		return videoPath, nil
	}

	return "", fmt.Errorf("%w: video_path must be a http(s) URL or a valid file path", ErrInvalidVideoPath)
}

func IsHTTPURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(parsed.Scheme)
	return (scheme == "http" || scheme == "https") && parsed.Host != ""
}

func ValidateUUID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s", ErrInvalidUUID, id)
	}
	return parsed, nil
}

// ParseLimit reads an optional page size. An empty value yields defaultLimit.
func ParseLimit(raw string, defaultLimit, maxLimit int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultLimit, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: limit must be an integer", ErrInvalidPagination)
	}
	if limit < 0 || limit > maxLimit {
		return 0, fmt.Errorf("%w: limit must be between 0 and %d", ErrInvalidPagination, maxLimit)
	}
	return limit, nil
}

func SanitizeString(s string) string {
	return strings.TrimSpace(s)
}
