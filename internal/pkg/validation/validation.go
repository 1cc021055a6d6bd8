package validation

import "regexp"

// Usernames: letters, digits, underscores, 2-32 chars. Keeps family logins
// typeable by kids while staying unambiguous in the leaderboard.
var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]{2,32}$`)

// Tickers: 1-10 uppercase letters with an optional dot segment (BRK.B).
var tickerRe = regexp.MustCompile(`^[A-Z]{1,10}(\.[A-Z]{1,4})?$`)

func IsValidUsername(username string) bool {
	return usernameRe.MatchString(username)
}

// IsValidPassword only requires a minimum length; these are play-money
// accounts shared inside a household.
func IsValidPassword(password string) bool {
	return len(password) >= 4
}

func IsValidTicker(ticker string) bool {
	return tickerRe.MatchString(ticker)
}
