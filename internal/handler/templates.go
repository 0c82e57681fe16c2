package handler

import (
	"fmt"
	"html/template"
	"strings"
	"time"
)

// TemplateFuncs returns the function map shared by every page template.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatPrice": FormatPrice,
		"add":         func(a, b int) int { return a + b },
		"sub":         func(a, b int) int { return a - b },
		"year":        func() int { return time.Now().Year() },
		"title":       TitleCase,
	}
}

// FormatPrice renders a price in dollars with two decimal places.
func FormatPrice(price float64) string {
	return fmt.Sprintf("$%.2f", price)
}

// TitleCase uppercases the first letter of each word. Used for category
// labels stored in lowercase.
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
