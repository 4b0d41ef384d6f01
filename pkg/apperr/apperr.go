// Package apperr defines the stable error codes surfaced across the
// simulation core, per the error handling design in the specification.
package apperr

// Code is a stable string identifier for a class of rejected operation.
// Codes are never renamed once shipped — callers (including the external
// HTTP adapter and any LLM-facing debug tooling) match on the string.
type Code string

// Input validation
const (
	NoIntent             Code = "NO_INTENT"
	NoPrimaryAction      Code = "NO_PRIMARY_ACTION"
	EmptyAction          Code = "EMPTY_ACTION"
	InvalidDirection     Code = "INVALID_DIRECTION"
	TargetNotFoundInCell Code = "TARGET_NOT_FOUND_IN_CELL"
	TargetNotInInventory Code = "TARGET_NOT_IN_INVENTORY"
	TargetNotVisible     Code = "TARGET_NOT_VISIBLE"
	NPCNotPresent        Code = "NPC_NOT_PRESENT"
)

// Quest
const (
	NoNPCTarget            Code = "NO_NPC_TARGET"
	InvalidNPCIDFormat     Code = "INVALID_NPC_ID_FORMAT"
	NPCNotFound            Code = "NPC_NOT_FOUND"
	NPCNotQuestGiver       Code = "NPC_NOT_QUEST_GIVER"
	NoQuestAvailable       Code = "NO_QUEST_AVAILABLE"
	QuestAlreadyActive     Code = "QUEST_ALREADY_ACTIVE"
	QuestAlreadyCompleted  Code = "QUEST_ALREADY_COMPLETED"
	MaxActiveQuestsReached Code = "MAX_ACTIVE_QUESTS_REACHED"
	ActiveQuestLimit       Code = "ACTIVE_QUEST_LIMIT"
	NoQuestID              Code = "NO_QUEST_ID"
	QuestNotActive         Code = "QUEST_NOT_ACTIVE"
	WrongQuestGiver        Code = "WRONG_QUEST_GIVER"
	IncompleteQuest        Code = "INCOMPLETE_QUEST"
)

// Parser (external intent normalization)
const (
	EmptyInput     Code = "EMPTY_INPUT"
	NoAPIKey       Code = "NO_API_KEY"
	LLMUnavailable Code = "LLM_UNAVAILABLE"
	ParseFailed    Code = "PARSE_FAILED"
	LowConfidence  Code = "LOW_CONFIDENCE"
)

// Save/load
const (
	MissingSessionID  Code = "MISSING_SESSION_ID"
	InvalidSaveName   Code = "INVALID_SAVE_NAME"
	InvalidGameState  Code = "INVALID_GAME_STATE"
	SaveLimitExceeded Code = "SAVE_LIMIT_EXCEEDED"
	SaveNotFound      Code = "SAVE_NOT_FOUND"
	InvalidSaveFile   Code = "INVALID_SAVE_FILE"
	SaveFailed        Code = "SAVE_FAILED"
	LoadFailed        Code = "LOAD_FAILED"
)

// CodedError wraps a stable Code with a human-readable message. It is the
// only error type validation/quest/session code returns to callers —
// state is left unchanged whenever a CodedError is returned.
type CodedError struct {
	Code    Code
	Message string
}

func (e *CodedError) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return string(e.Code) + ": " + e.Message
}

// New constructs a CodedError with a message.
func New(code Code, message string) *CodedError {
	return &CodedError{Code: code, Message: message}
}

// Is reports whether err is a CodedError with the given code.
func Is(err error, code Code) bool {
	ce, ok := err.(*CodedError)
	return ok && ce.Code == code
}
