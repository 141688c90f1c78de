package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/parsecompare"
)

// Run executes the compare command.
func (c *CompareCmd) Run(deps *Dependencies) error {
	result, err := deps.Comparer.Compare(deps.Ctx, &parsecompare.FetchRequest{
		URL:       c.URL,
		UserAgent: c.UserAgent,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", parsecompare.ErrorMessage(err))
		return err
	}

	if c.Markdown {
		c.toMarkdown(deps, &result.URLDriven)
		c.toMarkdown(deps, &result.DocumentDriven)
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// toMarkdown replaces the content of a successful outcome with Markdown.
// Conversion failures keep the original HTML.
func (c *CompareCmd) toMarkdown(deps *Dependencies, o *parsecompare.EngineOutcome) {
	if !o.Success || o.Data == nil || o.Data.Content == parsecompare.DefaultContent {
		return
	}
	md, err := deps.Converter.Convert(o.Data.Content, o.Data.URL)
	if err != nil {
		deps.Logger.Warn("markdown conversion failed", "url", o.Data.URL, "err", err)
		return
	}
	record := *o.Data
	record.Content = md
	o.Data = &record
}
