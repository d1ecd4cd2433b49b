// Copyright (c) 2026 Saturday Labs. All rights reserved.
// Author: backend@saturday.chat

package chat

import (
	"context"
	"strings"
)

// LabelNeutral is the label of last resort. It always has a response pool,
// which makes the dispatch pipeline total: every message gets an answer.
const LabelNeutral = "neutral"

// keywordRule binds an emotion label to the trigger phrases that imply it.
type keywordRule struct {
	label    string
	keywords []string
}

// fallbackRules is the ordered rule table for the keyword classifier.
//
// Order is part of the contract: rules are evaluated top to bottom and the
// first match wins, so a message containing both "sad" and "happy" is sadness.
// Changing the order changes classification results.
var fallbackRules = []keywordRule{
	{"sadness", []string{"sad", "lonely", "depressed", "unhappy", "miserable", "heartbroken", "crying", "cry"}},
	{"joy", []string{"happy", "joy", "glad", "delighted", "cheerful", "fantastic"}},
	{"anger", []string{"angry", "furious", "rage", "hate", "annoyed", "irritated"}},
	{"fear", []string{"afraid", "scared", "terrified", "fear", "frightened", "panic"}},
	{"love", []string{"love", "adore", "crush", "romantic"}},
	{"gratitude", []string{"thank", "grateful", "appreciate"}},
	{"excitement", []string{"excited", "thrilled", "can't wait", "cant wait", "pumped"}},
	{"surprise", []string{"surprised", "unexpected", "shocked", "no way"}},
	{"disgust", []string{"disgusting", "gross", "awful", "horrible"}},
	{"confusion", []string{"confused", "don't understand", "dont understand", "makes no sense"}},
	{"curiosity", []string{"curious", "wonder", "interesting"}},
	{"nervousness", []string{"nervous", "anxious", "worried", "stressed"}},
	{"pride", []string{"proud", "achievement", "accomplished"}},
	{"relief", []string{"relieved", "relief", "finally over"}},
	{"grief", []string{"passed away", "funeral", "loss of", "mourning"}},
}

// RuleClassifier is the deterministic keyword fallback.
//
// It never fails and needs no network, which is exactly why it backs up the
// remote model: when the model is down or slow the pipeline silently degrades
// here instead of erroring out to the user.
type RuleClassifier struct{}

// NewRuleClassifier creates the keyword fallback classifier.
func NewRuleClassifier() *RuleClassifier {
	return &RuleClassifier{}
}

// Classify scans the ordered rule table and returns the first matching label,
// or neutral when nothing matches. The error is always nil; the signature
// exists to satisfy [Classifier].
func (classifier *RuleClassifier) Classify(_ context.Context, text string) (string, error) {
	normalized := Normalize(text)

	for _, rule := range fallbackRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(normalized, keyword) {
				return rule.label, nil
			}
		}
	}

	return LabelNeutral, nil
}
