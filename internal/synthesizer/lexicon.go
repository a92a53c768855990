package synthesizer

// legalTerms flag questions and passages that use contract vocabulary.
// Multi-word entries are matched as phrases.
var legalTerms = map[string]struct{}{
	"liability": {}, "indemnify": {}, "indemnification": {}, "indemnity": {},
	"warranty": {}, "warranties": {}, "breach": {}, "termination": {},
	"terminate": {}, "confidentiality": {}, "confidential": {}, "arbitration": {},
	"jurisdiction": {}, "governing law": {}, "force majeure": {}, "severability": {},
	"assignment": {}, "waiver": {}, "damages": {}, "remedies": {}, "covenant": {},
	"consideration": {}, "counterparty": {}, "obligations": {}, "representations": {},
	"intellectual property": {}, "infringement": {}, "royalty": {}, "license": {},
	"sublicense": {}, "dispute resolution": {}, "notice period": {}, "renewal": {},
	"auto-renewal": {}, "non-compete": {}, "non-solicitation": {}, "escrow": {},
	"lien": {}, "encumbrance": {}, "default": {}, "cure period": {},
}

// stopwords are dropped during key-term extraction
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"by": {}, "can": {}, "could": {}, "do": {}, "does": {}, "for": {},
	"from": {}, "has": {}, "have": {}, "how": {}, "i": {}, "if": {}, "in": {},
	"is": {}, "it": {}, "its": {}, "may": {}, "must": {}, "no": {}, "not": {},
	"of": {}, "on": {}, "or": {}, "shall": {}, "should": {}, "so": {},
	"such": {}, "than": {}, "that": {}, "the": {}, "their": {}, "them": {},
	"then": {}, "there": {}, "they": {}, "this": {}, "to": {}, "under": {},
	"was": {}, "we": {}, "were": {}, "what": {}, "when": {}, "where": {},
	"which": {}, "who": {}, "will": {}, "with": {}, "would": {}, "you": {},
	"about": {}, "any": {}, "me": {}, "my": {}, "our": {}, "your": {},
}

// yesNoOpeners start a yes/no question
var yesNoOpeners = []string{
	"is ", "are ", "was ", "were ", "do ", "does ", "did ", "can ", "could ",
	"will ", "would ", "shall ", "should ", "must ", "may ", "has ", "have ",
}

// affirmativeCues suggest a positive answer when found in a relevant passage
var affirmativeCues = []string{
	"shall", "must", "will", "agrees to", "is required", "are required",
	"is entitled", "is permitted", "may", "has the right",
}

// negativeCues suggest a negative answer and are checked before affirmative
// cues since negation usually embeds an affirmative token.
var negativeCues = []string{
	"shall not", "must not", "will not", "may not", "is not", "are not",
	"not permitted", "not allowed", "not entitled", "prohibited",
	"no party", "in no event", "not be liable", "without any",
}

// comparisonMarkers identify comparison questions
var comparisonMarkers = []string{
	"difference between", "differences between", "compare", "compared to",
	"comparison", " versus ", " vs ", " vs. ", "differ from", "differ between",
}

// proceduralMarkers identify procedural questions
var proceduralMarkers = []string{
	"how do i", "how does one", "how to", "what steps", "what is the process",
	"what is the procedure", "what must be done", "procedure for", "process for",
	"steps to", "steps for",
}

// interpretationMarkers identify interpretation questions
var interpretationMarkers = []string{
	"what does", "mean", "meaning", "interpret", "interpretation",
	"implication", "implications", "intent", "purpose of", "why ",
}

// factualOpeners start a factual lookup question
var factualOpeners = []string{
	"what ", "when ", "where ", "who ", "whom ", "whose ", "which ",
	"how much ", "how many ", "how long ", "how often ",
}

// stepCues mark sentences that describe an ordered procedure
var stepCues = []string{
	"first", "second", "third", "then", "next", "finally", "prior to",
	"upon", "within", "before", "after", "following", "must submit",
	"must provide", "must notify", "shall submit", "shall provide",
	"shall notify", "written notice",
}
