package queue

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	TypeProbeVideo = "play:probe"
	TypePurgeViews = "play:purge"
)

type ProbeVideoPayload struct {
	PlayID    string `json:"play_id"`
	VideoPath string `json:"video_path"`
}

type PurgeViewsPayload struct {
	PlayID string `json:"play_id"`
}

func NewProbeVideoTask(payload ProbeVideoPayload) (*asynq.Task, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal probe payload: %w", err)
	}
	return asynq.NewTask(TypeProbeVideo, payloadBytes), nil
}

func ParseProbeVideoPayload(task *asynq.Task) (*ProbeVideoPayload, error) {
	var payload ProbeVideoPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal probe payload: %w", err)
	}
	if payload.PlayID == "" || payload.VideoPath == "" {
		return nil, fmt.Errorf("probe payload is missing play_id or video_path")
	}
	return &payload, nil
}

func NewPurgeViewsTask(payload PurgeViewsPayload) (*asynq.Task, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal purge payload: %w", err)
	}
	return asynq.NewTask(TypePurgeViews, payloadBytes), nil
}

func ParsePurgeViewsPayload(task *asynq.Task) (*PurgeViewsPayload, error) {
	var payload PurgeViewsPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal purge payload: %w", err)
	}
	if payload.PlayID == "" {
		return nil, fmt.Errorf("purge payload is missing play_id")
	}
	return &payload, nil
}
