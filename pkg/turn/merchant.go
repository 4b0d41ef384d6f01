package turn

// runMerchantRegeneration runs every 10th turn and is where trader-role NPC
// restock/expiry would be recomputed. There is no persistent NPC record
// store on World — settlement interiors generate NPCs ephemerally per
// (seed, site_id) and only their ids survive on SettlementNPCRef — so there
// is nothing yet for this step to mutate beyond flagging that a
// regeneration pass ran. isExpired would be computed per merchant here
// once such a store exists.
func runMerchantRegeneration(s *State) {
	s.Counters.MerchantStateRev++
}
