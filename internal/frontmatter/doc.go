// Package frontmatter turns the leading raw cell of a notebook into a Hugo
// TOML front matter block.
//
// Authors write the front matter in the first raw cell and close it with the
// <!--eofm--> divider. Everything before the divider becomes a single raw
// cell wrapped in +++ delimiters; the cells before it are dropped and the
// cells after it pass through untouched.
package frontmatter
