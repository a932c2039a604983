package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/orchids/plays-registry/pkg/logger"
)

var ErrNoVideoStream = errors.New("no video stream found")

type VideoMetadata struct {
	Duration   float64
	Width      int
	Height     int
	FrameRate  float64
	Bitrate    int64
	VideoCodec string
	AudioCodec string
	Format     string
}

func (m *VideoMetadata) Resolution() string {
	return fmt.Sprintf("%dx%d", m.Width, m.Height)
}

// ProbeService inspects a play's video reference with ffprobe. ffprobe reads
// both local paths and http(s) URLs, so references are passed through as-is.
type ProbeService struct {
	log         *logger.Logger
	timeout     time.Duration
	ffprobePath string
	lookupOnce  sync.Once
}

func NewProbeService(timeout time.Duration, log *logger.Logger) *ProbeService {
	return &ProbeService{
		log:     log,
		timeout: timeout,
	}
}

func (s *ProbeService) Probe(ctx context.Context, videoPath string) (*VideoMetadata, error) {
	s.ensureFFprobePath()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, s.ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		videoPath,
	)

	output, err := cmd.Output()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("ffprobe timeout after %s", s.timeout)
		}
		return nil, fmt.Errorf("ffprobe execution failed: %w", err)
	}

	metadata, err := parseProbeOutput(output)
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "probed video reference", map[string]interface{}{
		"video_path": videoPath,
		"duration":   metadata.Duration,
		"resolution": metadata.Resolution(),
		"codec":      metadata.VideoCodec,
	})

	return metadata, nil
}

func parseProbeOutput(output []byte) (*VideoMetadata, error) {
	var probeData struct {
		Format struct {
			Duration string `json:"duration"`
			Bitrate  string `json:"bit_rate"`
			Format   string `json:"format_name"`
		} `json:"format"`
		Streams []struct {
			CodecType  string `json:"codec_type"`
			CodecName  string `json:"codec_name"`
			Width      int    `json:"width"`
			Height     int    `json:"height"`
			RFrameRate string `json:"r_frame_rate"`
		} `json:"streams"`
	}

	if err := json.Unmarshal(output, &probeData); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	metadata := &VideoMetadata{
		Format: probeData.Format.Format,
	}

	if dur, err := strconv.ParseFloat(probeData.Format.Duration, 64); err == nil {
		metadata.Duration = dur
	}

	if br, err := strconv.ParseInt(probeData.Format.Bitrate, 10, 64); err == nil {
		metadata.Bitrate = br
	}

	for _, stream := range probeData.Streams {
		if stream.CodecType == "video" && metadata.VideoCodec == "" {
			metadata.VideoCodec = stream.CodecName
			metadata.Width = stream.Width
			metadata.Height = stream.Height
			metadata.FrameRate = parseFrameRate(stream.RFrameRate)
		}
		if stream.CodecType == "audio" && metadata.AudioCodec == "" {
			metadata.AudioCodec = stream.CodecName
		}
	}

	if metadata.VideoCodec == "" {
		return nil, ErrNoVideoStream
	}

	return metadata, nil
}

// parseFrameRate reads ffprobe's "num/den" notation.
func parseFrameRate(raw string) float64 {
	num, den, ok := strings.Cut(raw, "/")
	if !ok {
		return 0
	}
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d <= 0 {
		return 0
	}
	return n / d
}

func (s *ProbeService) ensureFFprobePath() {
	s.lookupOnce.Do(func() {
		path, err := exec.LookPath("ffprobe")
		if err != nil {
			s.ffprobePath = "ffprobe"
		} else {
			s.ffprobePath = path
		}
	})
}
