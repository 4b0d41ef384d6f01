package catalogs

// Trait is one entry in the 104-entry NPC personality trait catalog.
type Trait struct {
	Name     string
	Polarity string // "positive", "negative", "neutral"
}

// rawTraits is the seed data for the trait catalog: 40 positive, 40
// negative, 24 neutral, all distinct (case-insensitively).
var rawTraits = []Trait{
	// positive (40)
	{"brave", "positive"}, {"kind", "positive"}, {"loyal", "positive"}, {"honest", "positive"},
	{"generous", "positive"}, {"patient", "positive"}, {"wise", "positive"}, {"cheerful", "positive"},
	{"diligent", "positive"}, {"humble", "positive"}, {"resourceful", "positive"}, {"compassionate", "positive"},
	{"disciplined", "positive"}, {"curious", "positive"}, {"optimistic", "positive"}, {"forgiving", "positive"},
	{"steadfast", "positive"}, {"gracious", "positive"}, {"perceptive", "positive"}, {"charismatic", "positive"},
	{"industrious", "positive"}, {"tactful", "positive"}, {"courageous", "positive"}, {"devoted", "positive"},
	{"inventive", "positive"}, {"gentle", "positive"}, {"vigilant", "positive"}, {"fair-minded", "positive"},
	{"resilient", "positive"}, {"warmhearted", "positive"}, {"meticulous", "positive"}, {"stoic", "positive"},
	{"jovial", "positive"}, {"frugal", "positive"}, {"tenacious", "positive"}, {"empathetic", "positive"},
	{"candid", "positive"}, {"dutiful", "positive"}, {"adventurous", "positive"}, {"eloquent", "positive"},
	// negative (40)
	{"cowardly", "negative"}, {"cruel", "negative"}, {"treacherous", "negative"}, {"deceitful", "negative"},
	{"greedy", "negative"}, {"impatient", "negative"}, {"foolish", "negative"}, {"sullen", "negative"},
	{"lazy", "negative"}, {"arrogant", "negative"}, {"reckless", "negative"}, {"callous", "negative"},
	{"unruly", "negative"}, {"apathetic", "negative"}, {"pessimistic", "negative"}, {"vengeful", "negative"},
	{"fickle", "negative"}, {"rude", "negative"}, {"oblivious", "negative"}, {"manipulative", "negative"},
	{"slothful", "negative"}, {"tactless", "negative"}, {"timid", "negative"}, {"disloyal", "negative"},
	{"dull", "negative"}, {"harsh", "negative"}, {"negligent", "negative"}, {"biased", "negative"},
	{"brittle", "negative"}, {"coldhearted", "negative"}, {"careless", "negative"}, {"volatile", "negative"},
	{"morose", "negative"}, {"wasteful", "negative"}, {"stubborn-to-a-fault", "negative"}, {"unfeeling", "negative"},
	{"duplicitous", "negative"}, {"shirking", "negative"}, {"reckless-tongued", "negative"}, {"pompous", "negative"},
	// neutral (24)
	{"stubborn", "neutral"}, {"quiet", "neutral"}, {"blunt", "neutral"}, {"pragmatic", "neutral"},
	{"reserved", "neutral"}, {"superstitious", "neutral"}, {"formal", "neutral"}, {"eccentric", "neutral"},
	{"skeptical", "neutral"}, {"traditional", "neutral"}, {"ambitious", "neutral"}, {"solitary", "neutral"},
	{"talkative", "neutral"}, {"methodical", "neutral"}, {"sentimental", "neutral"}, {"restless", "neutral"},
	{"cautious", "neutral"}, {"proud", "neutral"}, {"nostalgic", "neutral"}, {"inquisitive", "neutral"},
	{"austere", "neutral"}, {"whimsical", "neutral"}, {"guarded", "neutral"}, {"watchful", "neutral"},
}
