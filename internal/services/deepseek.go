package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mdunham726-coder/wyrdreach/pkg/action"
	"github.com/mdunham726-coder/wyrdreach/pkg/quest"
	"github.com/mdunham726-coder/wyrdreach/pkg/turn"
)

const (
	deepseekBaseURL = "https://api.deepseek.com/v1"
	deepseekModel   = "deepseek-chat"

	defaultDeepseekTemperature = 0.7
	defaultDeepseekMaxTokens   = 1024
)

// DeepseekService is the black-box LLM collaborator this core's turn and
// action packages depend on only through interfaces (turn.Narrator,
// turn.QuestNarrator, action.Parser). Grounded on AnthropicService's HTTP
// client shape, adapted for DeepSeek's OpenAI-compatible chat endpoint and
// bearer auth instead of Anthropic's x-api-key header.
type DeepseekService struct {
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

var (
	_ turn.Narrator      = (*DeepseekService)(nil)
	_ turn.QuestNarrator = (*DeepseekService)(nil)
	_ action.Parser      = (*DeepseekService)(nil)
)

func NewDeepseekService(apiKey string, logger *slog.Logger) *DeepseekService {
	return &DeepseekService{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

type deepseekMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type deepseekChatRequest struct {
	Model       string             `json:"model"`
	Messages    []deepseekMessage  `json:"messages"`
	Temperature float64            `json:"temperature"`
	MaxTokens   int                `json:"max_tokens"`
	Stream      bool               `json:"stream"`
	ResponseFmt *deepseekRespShape `json:"response_format,omitempty"`
}

type deepseekRespShape struct {
	Type string `json:"type"`
}

type deepseekChatResponse struct {
	Choices []struct {
		Message deepseekMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (d *DeepseekService) chatCompletion(ctx context.Context, system, user string, jsonMode bool, timeout time.Duration) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	reqBody := deepseekChatRequest{
		Model: deepseekModel,
		Messages: []deepseekMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: defaultDeepseekTemperature,
		MaxTokens:   defaultDeepseekMaxTokens,
	}
	if jsonMode {
		reqBody.ResponseFmt = &deepseekRespShape{Type: "json_object"}
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal deepseek request: %w", err)
	}

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, deepseekBaseURL+"/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to build deepseek request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+d.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("deepseek request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read deepseek response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("deepseek request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed deepseekChatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse deepseek response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("deepseek error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("deepseek response had no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// Narrate implements turn.Narrator: one attempt with a 15s timeout.
func (d *DeepseekService) Narrate(ctx context.Context, scenePrompt string) (string, error) {
	const system = "You are the narrator of a text-driven roguelike world. Write two to four sentences of vivid, second-person scene description. Never invent mechanical outcomes not implied by the scene state."
	return d.chatCompletion(ctx, system, scenePrompt, false, 15*time.Second)
}

// parseIntentJSON is the wire shape the parser system prompt asks the
// model to emit; kept separate from action.Intent so a malformed or
// partial LLM reply never leaks unexported zero-value ambiguity into the
// normalized type.
type parseIntentJSON struct {
	Action     string            `json:"action"`
	Target     string            `json:"target"`
	Dir        string            `json:"dir"`
	Compound   bool              `json:"compound"`
	Secondary  []parseIntentJSON `json:"secondary"`
	Confidence float64           `json:"confidence"`
}

const parserSystemPrompt = `You translate a player's free-text command into JSON describing their intent.
Reply with a single JSON object: {"action":"...","target":"...","dir":"...","compound":false,"secondary":[],"confidence":0.0-1.0}.
Valid actions: move, look, take, drop, talk, examine, attack, cast, sneak, accept_quest, complete_quest, ask_about_quest.
Set confidence low (<0.5) when the command is ambiguous or unrecognized.`

// Parse implements action.Parser. On any transport or decode failure the
// caller (action.Normalize) falls back to the regex parser, so errors here
// are reported rather than papered over.
func (d *DeepseekService) Parse(ctx context.Context, userText, gameContext string) (action.Intent, error) {
	user := fmt.Sprintf("Game context: %s\nPlayer said: %s", gameContext, userText)
	raw, err := d.chatCompletion(ctx, parserSystemPrompt, user, true, 15*time.Second)
	if err != nil {
		return action.Intent{}, err
	}

	var parsed parseIntentJSON
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &parsed); err != nil {
		return action.Intent{}, fmt.Errorf("failed to parse deepseek intent JSON: %w", err)
	}

	intent := action.Intent{
		Primary: action.PrimaryAction{
			Action: action.Kind(parsed.Action),
			Target: parsed.Target,
			Dir:    parsed.Dir,
		},
		Compound:   parsed.Compound,
		Confidence: parsed.Confidence,
	}
	for _, s := range parsed.Secondary {
		intent.Secondary = append(intent.Secondary, action.PrimaryAction{
			Action: action.Kind(s.Action),
			Target: s.Target,
			Dir:    s.Dir,
		})
	}
	return intent, nil
}

type narrativeReplyJSON struct {
	Title             string            `json:"title"`
	Description       string            `json:"description"`
	RewardDescription string            `json:"reward_description"`
	StepNarratives    map[string]string `json:"step_narratives"`
}

// NarrateQuest implements turn.QuestNarrator: 3 attempts, 30s timeout each,
// with exponential backoff (1s, then 2s) between attempts, falling back to
// quest.FallbackNarrative only after every attempt fails
// validation or the transport call itself errors.
func (d *DeepseekService) NarrateQuest(ctx context.Context, c quest.Constraint, settlementName string) (quest.NarrativeReply, error) {
	const system = `You write quest text for a text-driven roguelike. Reply with a single JSON object:
{"title":"...","description":"...","reward_description":"...","step_narratives":{"<step id>":"..."}}.
Every declared step id must have an entry. Never mention gold amounts other than the exact reward given. Never use a forbidden word given in the prompt.`

	user := fmt.Sprintf(
		"Settlement: %s\nDifficulty: %s\nReward gold: %d\nForbidden keywords: %s\nSteps: %s",
		settlementName, c.Difficulty, c.RewardGold, strings.Join(c.ForbiddenKeywords, ", "), stepIDs(c.Steps),
	)

	const maxAttempts = 3
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				d.logger.Warn("quest narration cancelled during backoff, using fallback", "error", ctx.Err(), "settlement", settlementName)
				return quest.FallbackNarrative(c, settlementName), nil
			case <-time.After(time.Duration(1<<(attempt-1)) * time.Second):
			}
		}
		raw, err := d.chatCompletion(ctx, system, user, true, 30*time.Second)
		if err != nil {
			lastErr = err
			continue
		}
		var parsed narrativeReplyJSON
		if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &parsed); err != nil {
			lastErr = err
			continue
		}
		reply := quest.NarrativeReply{
			Title:             parsed.Title,
			Description:       parsed.Description,
			RewardDescription: parsed.RewardDescription,
			StepNarratives:    parsed.StepNarratives,
		}
		if err := quest.ValidateNarrative(c, reply); err != nil {
			lastErr = err
			continue
		}
		return reply, nil
	}

	d.logger.Warn("quest narration exhausted retries, using fallback", "error", lastErr, "settlement", settlementName)
	return quest.FallbackNarrative(c, settlementName), nil
}

func stepIDs(steps []quest.Step) string {
	ids := make([]string, len(steps))
	for i, s := range steps {
		ids[i] = s.ID
	}
	return strings.Join(ids, ", ")
}
