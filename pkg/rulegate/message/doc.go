/*
Package message renders violation messages for gate decisions.

# Overview

message expands ${path} and $var placeholders in rule annotation strings
using the snapshot the rule was evaluated against. Placeholders resolve
the way the evaluator resolves identifier paths, so a message can quote
the exact values that tripped a rule.

# Basic Usage

Render placeholders using the package-level function:

	msg := message.Render("spread ${spread_pips} exceeds cap", snapshot)
	// msg: "spread 4.5 exceeds cap"

Brace placeholders accept dotted paths into nested snapshot values:

	snapshot := map[string]any{
	    "market": map[string]any{"symbol": "EURUSD", "spread_pips": 4.5},
	}
	msg := message.Render("${market.symbol} spread ${market.spread_pips}", snapshot)
	// msg: "EURUSD spread 4.5"

# Placeholder Patterns

Two patterns are supported:

  - ${path} - Brace style, dotted paths allowed, recommended for clarity
  - $var - Dollar style, single segment only, requires word boundaries

The dollar style uses word boundary detection to avoid partial matches.
For example, $spread won't match inside $spread_pips. Dotted paths need
the brace style; in "$market.symbol" only $market is a placeholder.

# Missing Values

By default, placeholders that don't resolve are kept as-is:

	msg := message.Render("spread ${gone}", nil)
	// msg: "spread ${gone}"

Configure behavior with options:

	r := message.NewRenderer(message.WithMissingAction(message.MissingEmpty))
	msg, _ := r.Render("spread ${gone}", nil)
	// msg: "spread "

	r = message.NewRenderer(message.WithMissingAction(message.MissingError))
	_, err := r.Render("spread ${gone}", nil)
	// err: "undefined variable: gone"

# Thread Safety

Renderer is safe for concurrent use after construction.
Package-level functions use a shared default renderer.
*/
package message
