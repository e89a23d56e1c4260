package requirements

import (
	"errors"
	"strings"
)

type RequirementExpression struct {
	string
}

type TokenType int

const (
	TokenSegment TokenType = iota
	TokenAnd
	TokenEnd
)

type Token struct {
	Type  TokenType
	Value string
}

type LexerState int

const (
	LexerStart LexerState = iota
	LexerSegment
)

// Tokenize splits the expression on every '&' that is not nested inside
// brackets, braces or parentheses.
func (requirementExpression RequirementExpression) Tokenize() *[]Token {
	initialPos := 0
	depth := 0
	state := LexerStart

	var tokens []Token

	for pos, char := range requirementExpression.string {
		switch char {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth > 0 {
				depth--
			}
		}

		switch state {
		case LexerStart:
			switch {
			case char == '&':
				tokens = append(tokens, Token{Type: TokenAnd, Value: "&"})
				initialPos = pos + 1
			case char == ' ' || char == '\t' || char == '\n':
				initialPos = pos + 1
			default:
				state = LexerSegment
			}
		case LexerSegment:
			if char == '&' && depth == 0 {
				tokens = append(tokens, Token{Type: TokenSegment, Value: strings.TrimSpace(requirementExpression.string[initialPos:pos])})
				tokens = append(tokens, Token{Type: TokenAnd, Value: "&"})
				initialPos = pos + 1
				state = LexerStart
			}
		}
	}
	if state == LexerSegment {
		tokens = append(tokens, Token{Type: TokenSegment, Value: strings.TrimSpace(requirementExpression.string[initialPos:])})
	}
	tokens = append(tokens, Token{Type: TokenEnd, Value: "$"})
	return &tokens
}

func Eat(tokens *[]Token, tokenType TokenType) (string, error) {
	if len(*tokens) < 1 {
		return "", errors.New("no token to eat")
	}
	if (*tokens)[0].Type != tokenType {
		return "", errors.New("invalid token")
	}

	token := (*tokens)[0]
	*tokens = (*tokens)[1:]
	return token.Value, nil
}

// stripOuter removes one pair of parentheses when it wraps the whole string.
func stripOuter(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return s
	}
	depth := 0
	for pos, char := range s {
		switch char {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && pos != len(s)-1 {
				return s
			}
		}
	}
	return strings.TrimSpace(s[1 : len(s)-1])
}

// splitTopLevel splits s on sep outside of any brackets, braces or
// parentheses. Parts are trimmed and empty parts dropped.
func splitTopLevel(s string, sep rune) []string {
	var parts []string
	depth := 0
	initialPos := 0
	for pos, char := range s {
		switch char {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth > 0 {
				depth--
			}
		case sep:
			if depth == 0 {
				if part := strings.TrimSpace(s[initialPos:pos]); part != "" {
					parts = append(parts, part)
				}
				initialPos = pos + len(string(sep))
			}
		}
	}
	if part := strings.TrimSpace(s[initialPos:]); part != "" {
		parts = append(parts, part)
	}
	return parts
}
