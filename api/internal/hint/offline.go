package hint

import (
	"strings"
)

type offlineRule struct {
	// every group must match; a group matches when any of its keywords is found
	msgAll [][]string
	ctxAll [][]string
	reply  string
}

func (r offlineRule) match(ctx, msg string) bool {
	for _, g := range r.msgAll {
		if !containsAny(msg, g) {
			return false
		}
	}
	for _, g := range r.ctxAll {
		if !containsAny(ctx, g) {
			return false
		}
	}
	return true
}

// First match wins.
var offlineRules = []offlineRule{
	{
		msgAll: [][]string{{"what is"}, {"encryption", "encrypt"}},
		reply:  "Encryption is like locking a message in a box: an algorithm and a key scramble readable plaintext into ciphertext, so only someone holding the right key can open it.",
	},
	{
		msgAll: [][]string{{"what is"}, {"decryption", "decrypt"}},
		reply:  "Decryption is the reverse trip: the right key turns ciphertext back into readable plaintext. Without the key, the box stays locked.",
	},
	{
		ctxAll: [][]string{{"caesar", "shift"}},
		msgAll: [][]string{{"decrypt", "decode", "crack"}},
		reply:  "Every letter was slid the same number of places along the alphabet. Try sliding them back one step at a time, and watch for a short common word like THE or AND to appear.",
	},
	{
		ctxAll: [][]string{{"man"}, {"middle"}},
		msgAll: [][]string{{"prevent", "stop", "defend", "protect"}},
		reply:  "An interceptor thrives when nobody checks who is on the other end. Think about encrypted channels like HTTPS and certificates that prove the server really is who it claims to be.",
	},
	{
		msgAll: [][]string{{"symmetric", "asymmetric"}},
		reply:  "Count the keys: one shared secret for both locking and unlocking, or a public key anyone can use paired with a private key only you hold.",
	},
	{
		msgAll: [][]string{{"key"}},
		reply:  "A key is the secret ingredient the algorithm mixes in. The longer and more random it is, the more guesses an attacker needs to stumble onto it.",
	},
	{
		ctxAll: [][]string{{"hash"}},
		reply:  "A hash is a one-way fingerprint: easy to compute, practically impossible to reverse, and a tiny change in the input changes the whole output.",
	},
}

// Offline returns a canned hint for the question without any I/O. It never returns "".
func Offline(levelContext, userMessage string) string {
	ctx := strings.ToLower(levelContext)
	msg := strings.ToLower(userMessage)
	for _, r := range offlineRules {
		if r.match(ctx, msg) {
			return r.reply
		}
	}

	topic := firstSentence(levelContext)
	if topic == "" {
		return "My uplink is down, recruit, but the logic still works: reread the challenge, spot the key idea, and test one small guess at a time."
	}
	return "My uplink is down, recruit, so rely on your instincts. Focus on the core idea of this challenge: " + topic + " Break it into small steps and test one guess at a time."
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func firstSentence(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if i := strings.IndexAny(s, ".!?"); i >= 0 {
		return s[:i+1]
	}
	return s + "."
}
