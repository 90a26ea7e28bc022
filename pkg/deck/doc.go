/*
Package deck loads a slide deck from a directory.

A deck directory holds one Markdown file per slide, ordered naturally by file
name ("02-intro.md" before "10-outro.md"), and an optional deck.yaml manifest:

	title: Quarterly review
	settle_delay: 500ms
	activation_delay: 100ms
	swipe_threshold: 50
	hook_timeout: 30s                # kills hook processes running longer
	slides: [intro.md, numbers.md]   # explicit order, optional
	hooks:
	  - name: revenue-chart
	    command: ./charts/revenue.sh
	    timeout: 5s                    # overrides hook_timeout

Each slide may start with YAML front matter:

	---
	title: Revenue
	activate: revenue-chart
	---

Hooks may also live in a separate hooks.yaml next to the manifest.
*/
package deck
