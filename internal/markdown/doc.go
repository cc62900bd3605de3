// Package markdown inspects exported Hugo content: it reads the front matter
// block back out and renders the body to HTML with goldmark.
package markdown
