package rules

import (
	"sort"
	"strconv"
	"strings"

	"recon-analysis-backend/internal/models"
)

// ResolvedRule is a RuleStateMapping with every sub-rule id in its expression
// inlined. Ids with no matching sub-rule stay as literal numbers and are
// listed in Unresolved; evaluators must treat such a rule as indeterminate
// rather than failed.
type ResolvedRule struct {
	MappingID   int64
	Expression  string
	RuleIDs     []int64
	Unresolved  []int64
	SeqNumber   *int
	State       string
	ArtRemarks  string
	FileType1ID string
	FileType2ID string
}

// Indeterminate reports whether the rule still contains unexpanded ids.
func (r ResolvedRule) Indeterminate() bool { return len(r.Unresolved) > 0 }

// Resolve inlines sub-rule predicates into each mapping's expression.
// Substitution happens at the token level: the expression is split into
// number, identifier and operator tokens, and only standalone number tokens
// are replaced, each with the sub-rule text wrapped in parentheses. The
// substituted text is opaque - it is never re-scanned - so a numeral inside
// one sub-rule's predicate cannot be corrupted by another id, and digits
// embedded in identifiers are never touched.
//
// Pure function: deterministic for identical inputs, preserves caller
// ordering, never partially fails.
func Resolve(mappings []models.RuleStateMapping, subRules map[int64]models.Rule) []ResolvedRule {
	resolved := make([]ResolvedRule, 0, len(mappings))
	for _, m := range mappings {
		if m.RuleExpression == "" {
			continue
		}

		var (
			out        strings.Builder
			ids        []int64
			unresolved []int64
		)
		for _, tok := range tokenize(m.RuleExpression) {
			if tok.kind != tokenNumber {
				out.WriteString(tok.text)
				continue
			}
			id, err := strconv.ParseInt(tok.text, 10, 64)
			if err != nil {
				out.WriteString(tok.text)
				continue
			}
			ids = append(ids, id)
			sub, ok := subRules[id]
			if !ok {
				unresolved = append(unresolved, id)
				out.WriteString(tok.text)
				continue
			}
			out.WriteString("(")
			out.WriteString(sub.Predicate)
			out.WriteString(")")
		}

		resolved = append(resolved, ResolvedRule{
			MappingID:   m.ID,
			Expression:  out.String(),
			RuleIDs:     ids,
			Unresolved:  unresolved,
			SeqNumber:   m.SeqNumber,
			State:       m.ReconState.State,
			ArtRemarks:  m.ReconState.ArtRemarks,
			FileType1ID: m.FileType1ID,
			FileType2ID: m.FileType2ID,
		})
	}
	return resolved
}

// Applicable selects rules scoped to the exact record-type pair (either
// orientation) plus self-rules on either type, ordered by sequence number
// with unset numbers last. An empty result means the caller should fall back
// to the full rule set.
func Applicable(resolved []ResolvedRule, typeAID, typeBID string) []ResolvedRule {
	var out []ResolvedRule
	for _, r := range resolved {
		pairMatch := (r.FileType1ID == typeAID && r.FileType2ID == typeBID) ||
			(r.FileType1ID == typeBID && r.FileType2ID == typeAID)
		selfMatch := r.FileType1ID == r.FileType2ID &&
			(r.FileType1ID == typeAID || r.FileType1ID == typeBID)
		if pairMatch || selfMatch {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return seqOrder(out[i].SeqNumber) < seqOrder(out[j].SeqNumber)
	})
	return out
}

func seqOrder(seq *int) int {
	if seq == nil {
		return int(^uint(0) >> 1)
	}
	return *seq
}

type tokenKind int

const (
	tokenNumber tokenKind = iota
	tokenWord
	tokenOther
)

type token struct {
	kind tokenKind
	text string
}

// tokenize splits an expression into maximal digit runs, identifier runs and
// everything else. A digit run adjoining an identifier character belongs to
// the identifier ("amount2" is one word token, not a number).
func tokenize(expr string) []token {
	var toks []token
	i := 0
	for i < len(expr) {
		c := expr[i]
		switch {
		case isDigit(c):
			j := i
			for j < len(expr) && isDigit(expr[j]) {
				j++
			}
			// Digits followed by identifier characters are part of a
			// longer word ("2x"); digits preceded by one were already
			// consumed by the word case below.
			if j < len(expr) && isWordChar(expr[j]) {
				for j < len(expr) && (isWordChar(expr[j]) || isDigit(expr[j])) {
					j++
				}
				toks = append(toks, token{tokenWord, expr[i:j]})
			} else {
				toks = append(toks, token{tokenNumber, expr[i:j]})
			}
			i = j
		case isWordChar(c):
			j := i
			for j < len(expr) && (isWordChar(expr[j]) || isDigit(expr[j])) {
				j++
			}
			toks = append(toks, token{tokenWord, expr[i:j]})
			i = j
		default:
			j := i
			for j < len(expr) && !isDigit(expr[j]) && !isWordChar(expr[j]) {
				j++
			}
			toks = append(toks, token{tokenOther, expr[i:j]})
			i = j
		}
	}
	return toks
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isWordChar(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
