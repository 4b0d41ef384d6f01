package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mdunham726-coder/wyrdreach/pkg/action"
	"github.com/mdunham726-coder/wyrdreach/pkg/apperr"
	"github.com/mdunham726-coder/wyrdreach/pkg/quest"
	"github.com/mdunham726-coder/wyrdreach/pkg/session"
	"github.com/mdunham726-coder/wyrdreach/pkg/turn"
)

// questsPerSettlement is how many quests are rolled the first time a
// settlement's available list is queried.
const questsPerSettlement = 3

// QuestHandler serves the §6 `/quest/*` endpoints. It seeds a settlement's
// available list lazily, on first request, rather than at world-generation
// time, since §4's generator never runs outside the streaming window and a
// settlement's quest giver NPC isn't assigned until worldgen.EnterL2FromL1
// generates the settlement's NPC pool.
type QuestHandler struct {
	store         *session.Store
	questNarrator turn.QuestNarrator
	logger        *slog.Logger
}

func NewQuestHandler(store *session.Store, questNarrator turn.QuestNarrator, logger *slog.Logger) *QuestHandler {
	return &QuestHandler{store: store, questNarrator: questNarrator, logger: logger}
}

type questResponse struct {
	Success bool          `json:"success"`
	Quests  []quest.Quest `json:"quests,omitempty"`
	Quest   *quest.Quest  `json:"quest,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// Available handles GET /quest/available?settlementId=….
func (h *QuestHandler) Available(w http.ResponseWriter, r *http.Request) {
	sessionID := resolveSessionID(w, r)
	settlementID := r.URL.Query().Get("settlementId")
	if settlementID == "" {
		writeJSON(w, http.StatusBadRequest, questResponse{Error: string(apperr.NoQuestID)})
		return
	}

	live, cerr := h.store.Get(r.Context(), sessionID)
	if cerr != nil || live == nil {
		writeJSON(w, http.StatusNotFound, questResponse{Error: string(apperr.MissingSessionID)})
		return
	}

	settlement, ok := live.World.Settlements[settlementID]
	if !ok {
		writeJSON(w, http.StatusNotFound, questResponse{Error: string(apperr.NPCNotFound)})
		return
	}

	if len(live.Quests.Available[settlementID]) == 0 {
		h.seedQuests(r.Context(), live, settlementID, settlement.Tier)
		if err := h.store.Put(r.Context(), live); err != nil {
			writeJSON(w, http.StatusInternalServerError, questResponse{Error: string(err.Code)})
			return
		}
	}

	writeJSON(w, http.StatusOK, questResponse{Success: true, Quests: live.Quests.Available[settlementID]})
}

func (h *QuestHandler) seedQuests(ctx context.Context, live *turn.State, settlementID string, tier int) {
	giverNPCID := settlementGiverID(live, settlementID)
	tierName := tierLabel(tier)

	for i := 0; i < questsPerSettlement; i++ {
		q := quest.GenerateQuest(live.World.Seed, settlementID, tierName, settlementID, giverNPCID, i)
		if h.questNarrator != nil {
			reply, err := h.questNarrator.NarrateQuest(ctx, q.Constraint, settlementID)
			if err == nil {
				quest.ApplyNarrative(&q, reply)
			}
		}
		live.Quests.Available[settlementID] = append(live.Quests.Available[settlementID], q)
	}
}

// tierLabel maps a settlement's numeric tier rank (1=outpost..6=metropolis,
// per worldgen.Site.Tier) to its catalog name.
func tierLabel(tier int) string {
	labels := []string{"", "outpost", "hamlet", "village", "town", "city", "metropolis"}
	if tier < 1 || tier >= len(labels) {
		return "hamlet"
	}
	return labels[tier]
}

// settlementGiverID picks the first NPC flagged IsQuestGiver in the
// settlement's pool, falling back to NPCs[0] if the settlement happens to
// have generated no eligible giver.
func settlementGiverID(live *turn.State, settlementID string) string {
	settlement := live.World.Settlements[settlementID]
	if settlement == nil || len(settlement.NPCs) == 0 {
		return "npc_" + settlementID + "_0"
	}
	for _, npc := range settlement.NPCs {
		if npc.IsQuestGiver {
			return npc.NPCID
		}
	}
	return settlement.NPCs[0].NPCID
}

type questIDRequest struct {
	QuestID string `json:"questId"`
	Step    string `json:"step"`
}

// Accept handles POST /quest/accept.
func (h *QuestHandler) Accept(w http.ResponseWriter, r *http.Request) {
	sessionID := resolveSessionID(w, r)
	var req questIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.QuestID == "" {
		writeJSON(w, http.StatusBadRequest, questResponse{Error: string(apperr.NoQuestID)})
		return
	}

	live, cerr := h.store.Get(r.Context(), sessionID)
	if cerr != nil || live == nil {
		writeJSON(w, http.StatusNotFound, questResponse{Error: string(apperr.MissingSessionID)})
		return
	}

	settlementID, _, ok := live.Quests.LocateAvailable(req.QuestID)
	if !ok {
		writeJSON(w, http.StatusBadRequest, questResponse{Error: string(apperr.NoQuestAvailable)})
		return
	}
	q, cerr := live.Quests.Accept(settlementID, req.QuestID)
	if cerr != nil {
		writeJSON(w, http.StatusBadRequest, questResponse{Error: string(cerr.Code)})
		return
	}
	if err := h.store.Put(r.Context(), live); err != nil {
		writeJSON(w, http.StatusInternalServerError, questResponse{Error: string(err.Code)})
		return
	}
	writeJSON(w, http.StatusOK, questResponse{Success: true, Quest: q})
}

// Progress handles POST /quest/progress: advances an active quest's
// current step.
func (h *QuestHandler) Progress(w http.ResponseWriter, r *http.Request) {
	sessionID := resolveSessionID(w, r)
	var req questIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.QuestID == "" {
		writeJSON(w, http.StatusBadRequest, questResponse{Error: string(apperr.NoQuestID)})
		return
	}

	live, cerr := h.store.Get(r.Context(), sessionID)
	if cerr != nil || live == nil {
		writeJSON(w, http.StatusNotFound, questResponse{Error: string(apperr.MissingSessionID)})
		return
	}
	if err := live.Quests.Advance(req.QuestID, req.Step); err != nil {
		writeJSON(w, http.StatusBadRequest, questResponse{Error: string(err.Code)})
		return
	}
	if err := h.store.Put(r.Context(), live); err != nil {
		writeJSON(w, http.StatusInternalServerError, questResponse{Error: string(err.Code)})
		return
	}
	writeJSON(w, http.StatusOK, questResponse{Success: true, Quest: live.Quests.Active[req.QuestID]})
}

// questGoldSink mirrors pkg/turn's quest bridge (quest_bridge.go), kept
// separate since this handler applies completion rewards outside a turn.
// Like that one it does not record the reward amount: action.Item has no
// quantity field, so AddGold only bumps or creates the gold item.
type questGoldSink struct {
	inv *action.Inventory
}

const goldItemID = "gold"

func (s questGoldSink) AddGold(amount int) {
	for i := range s.inv.Items {
		if s.inv.Items[i].ID == goldItemID {
			s.inv.Items[i].PropertyRevision++
			return
		}
	}
	s.inv.Items = append(s.inv.Items, action.Item{ID: goldItemID, Name: "gold", PropertyRevision: 1})
}

type noopGiverStore struct{}

func (noopGiverStore) DecrementQuestGiverRank(string) {}

// Complete handles POST /quest/complete. The giver NPC id is derived from
// the quest's own GiverNPCID rather than taken from the request, since the
// HTTP surface has no equivalent of the turn action queue's Dir field.
func (h *QuestHandler) Complete(w http.ResponseWriter, r *http.Request) {
	sessionID := resolveSessionID(w, r)
	var req questIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.QuestID == "" {
		writeJSON(w, http.StatusBadRequest, questResponse{Error: string(apperr.NoQuestID)})
		return
	}

	live, cerr := h.store.Get(r.Context(), sessionID)
	if cerr != nil || live == nil {
		writeJSON(w, http.StatusNotFound, questResponse{Error: string(apperr.MissingSessionID)})
		return
	}

	active, ok := live.Quests.Active[req.QuestID]
	if !ok {
		writeJSON(w, http.StatusBadRequest, questResponse{Error: string(apperr.QuestNotActive)})
		return
	}
	if err := live.Quests.Complete(req.QuestID, active.GiverNPCID, questGoldSink{&live.Player.Inventory}, noopGiverStore{}); err != nil {
		writeJSON(w, http.StatusBadRequest, questResponse{Error: string(err.Code)})
		return
	}
	if err := h.store.Put(r.Context(), live); err != nil {
		writeJSON(w, http.StatusInternalServerError, questResponse{Error: string(err.Code)})
		return
	}
	writeJSON(w, http.StatusOK, questResponse{Success: true})
}

type activeQuestsResponse struct {
	Success bool          `json:"success"`
	Quests  []quest.Quest `json:"quests"`
	Error   string        `json:"error,omitempty"`
}

// Active handles GET /quest/active.
func (h *QuestHandler) Active(w http.ResponseWriter, r *http.Request) {
	sessionID := resolveSessionID(w, r)
	live, cerr := h.store.Get(r.Context(), sessionID)
	if cerr != nil || live == nil {
		writeJSON(w, http.StatusNotFound, activeQuestsResponse{Error: string(apperr.MissingSessionID)})
		return
	}
	quests := make([]quest.Quest, 0, len(live.Quests.Active))
	for _, q := range live.Quests.Active {
		quests = append(quests, *q)
	}
	writeJSON(w, http.StatusOK, activeQuestsResponse{Success: true, Quests: quests})
}
