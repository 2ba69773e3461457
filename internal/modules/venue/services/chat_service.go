package services

import (
	"context"
	"strings"

	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/llm"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/modules/venue/models"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/modules/venue/repositories"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/shared/utils"
)

// MsgEmptyQuestion answers a blank chat message.
const MsgEmptyQuestion = "Пожалуйста, задайте вопрос."

// DefaultUserID is used when the client sends no user id.
const DefaultUserID = "default"

// Generator is the model fallback; *llm.Service implements it.
type Generator interface {
	Generate(ctx context.Context, req llm.CompletionRequest) llm.Result
}

// ChatAnswer is the outcome of resolving one chat message.
type ChatAnswer struct {
	Answer      string                 `json:"answer"`
	Source      string                 `json:"source"`
	Suggestions []models.SuggestionRef `json:"suggestions"`
}

// ChatService answers chat input: suggestion trigger phrases first, then the
// knowledge base, then the language model. It never fails; every branch ends
// in a user-facing string.
type ChatService struct {
	knowledge    repositories.KnowledgeRepo
	suggestions  repositories.SuggestionRepo
	menu         repositories.MenuRepo
	logs         repositories.ChatLogRepo
	generator    Generator
	history      *History
	systemPrompt string
}

func NewChatService(
	knowledge repositories.KnowledgeRepo,
	suggestions repositories.SuggestionRepo,
	menu repositories.MenuRepo,
	logs repositories.ChatLogRepo,
	generator Generator,
	history *History,
	systemPrompt string,
) *ChatService {
	return &ChatService{
		knowledge:    knowledge,
		suggestions:  suggestions,
		menu:         menu,
		logs:         logs,
		generator:    generator,
		history:      history,
		systemPrompt: systemPrompt,
	}
}

// History exposes the per-user conversation store for maintenance jobs.
func (s *ChatService) History() *History {
	return s.history
}

func (s *ChatService) Resolve(ctx context.Context, userID, input string) ChatAnswer {
	question := utils.NormalizeQuestion(input)
	if question == "" {
		return ChatAnswer{Answer: MsgEmptyQuestion, Source: models.SourceError, Suggestions: []models.SuggestionRef{}}
	}
	if userID = strings.TrimSpace(userID); userID == "" {
		userID = DefaultUserID
	}

	var (
		answer      string
		source      string
		activeTopic string
	)

	if topic, item, ok := s.suggestions.FindByQuestion(question); ok {
		answer, source, activeTopic = item.Answer, models.SourceSuggestionMap, topic
	} else if kb, ok := s.knowledge.Lookup(question); ok {
		answer, source = kb, models.SourceKnowledgeBase
	} else {
		res := s.generator.Generate(ctx, llm.CompletionRequest{
			SystemPrompt: s.systemPrompt,
			History:      s.history.Messages(userID),
			UserMessage:  strings.TrimSpace(input),
		})
		answer, source = res.Text, models.SourceExternalModel
		if !res.OK {
			source = models.SourceError
		}
	}

	topic, suggestions := s.suggestionsFor(question, activeTopic)

	if source != models.SourceError {
		s.history.Append(userID,
			llm.Message{Role: llm.RoleUser, Text: strings.TrimSpace(input)},
			llm.Message{Role: llm.RoleAssistant, Text: answer},
		)
	}

	entry := &models.LogEntry{
		UserID:   userID,
		Question: question,
		Answer:   answer,
		Source:   source,
		Topic:    topic,
	}
	if err := s.logs.Append(entry); err != nil {
		utils.LogError("failed to log chat exchange", err, map[string]interface{}{"user_id": userID})
	}

	utils.LogInfo("💬 Chat resolved", map[string]interface{}{
		"user_id":  userID,
		"question": utils.Truncate(question, 60),
		"source":   source,
		"topic":    topic,
	})

	return ChatAnswer{Answer: answer, Source: source, Suggestions: suggestions}
}

// suggestionsFor picks follow-ups: the matched suggestion topic, else the
// topic of a menu button with the same phrase, else the default topic.
func (s *ChatService) suggestionsFor(question, activeTopic string) (string, []models.SuggestionRef) {
	topic := activeTopic
	if topic == "" {
		if item, ok := s.menu.FindByQuestion(question); ok && item.SuggestionTopic != "" {
			if _, exists := s.suggestions.Items(item.SuggestionTopic); exists {
				topic = item.SuggestionTopic
			}
		}
	}
	if topic == "" {
		topic = models.DefaultTopic
	}

	items, _ := s.suggestions.Items(topic)
	refs := make([]models.SuggestionRef, 0, len(items))
	for _, item := range items {
		refs = append(refs, item.Ref())
	}
	return topic, refs
}
