package signal

import (
	"math"
	"strings"
)

// Lexicon is a small valence-based sentiment scorer for headlines. Each known
// word carries a valence in roughly [-4, 4]; the summed valence is squashed
// into [-1, 1] the way compound sentiment scores usually are.
type Lexicon struct {
	valences map[string]float64
}

// negators flip the sign of the next sentiment-bearing word.
var negators = map[string]bool{
	"not": true, "no": true, "never": true, "isnt": true, "isn't": true,
	"wont": true, "won't": true, "cant": true, "can't": true, "without": true,
}

// DefaultLexicon covers the vocabulary of finance and consumer headlines.
func DefaultLexicon() *Lexicon {
	return &Lexicon{valences: map[string]float64{
		// positive
		"gain": 1.8, "gains": 1.8, "surge": 2.6, "surges": 2.6, "soar": 2.9,
		"soars": 2.9, "rally": 2.2, "rallies": 2.2, "jump": 1.9, "jumps": 1.9,
		"climb": 1.6, "climbs": 1.6, "record": 1.5, "beat": 1.9, "beats": 1.9,
		"strong": 1.7, "growth": 1.6, "profit": 1.8, "profits": 1.8,
		"upgrade": 2.0, "upgraded": 2.0, "bullish": 2.4, "boom": 2.3,
		"win": 1.9, "wins": 1.9, "success": 2.1, "breakthrough": 2.5,
		"best": 2.2, "great": 2.0, "good": 1.5, "love": 2.3, "hype": 1.6,
		"popular": 1.4, "launch": 0.9, "launches": 0.9, "deal": 0.8,
		"optimistic": 1.9, "upbeat": 1.8, "outperform": 2.1, "buy": 1.2,

		// negative
		"loss": -1.9, "losses": -1.9, "plunge": -2.8, "plunges": -2.8,
		"crash": -3.1, "crashes": -3.1, "drop": -1.7, "drops": -1.7,
		"fall": -1.6, "falls": -1.6, "slump": -2.2, "slumps": -2.2,
		"tumble": -2.3, "tumbles": -2.3, "sink": -2.0, "sinks": -2.0,
		"weak": -1.6, "miss": -1.8, "misses": -1.8, "downgrade": -2.0,
		"downgraded": -2.0, "bearish": -2.4, "recall": -2.1, "lawsuit": -2.2,
		"fraud": -3.0, "scandal": -2.7, "fear": -2.0, "fears": -2.0,
		"panic": -2.6, "worst": -2.6, "bad": -1.6, "terrible": -2.4,
		"layoff": -2.2, "layoffs": -2.2, "cut": -1.2, "cuts": -1.2,
		"warning": -1.8, "warns": -1.8, "probe": -1.7, "halt": -1.9,
		"halts": -1.9, "risk": -1.3, "bankruptcy": -3.3, "sell": -1.2,
		"selloff": -2.4, "decline": -1.6, "declines": -1.6,
	}}
}

// Score returns a compound-style sentiment in [-1, 1] for one headline.
func (l *Lexicon) Score(text string) float64 {
	words := tokenize(text)
	sum := 0.0
	negate := false
	for _, w := range words {
		if negators[w] {
			negate = true
			continue
		}
		v, ok := l.valences[w]
		if !ok {
			continue
		}
		if negate {
			v = -v
			negate = false
		}
		sum += v
	}
	if sum == 0 {
		return 0
	}
	return sum / math.Sqrt(sum*sum+15)
}

func tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".,!?:;\"'()[]")
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
