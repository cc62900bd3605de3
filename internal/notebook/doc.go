// Package notebook reads and writes Jupyter nbformat v4 documents and finds
// them on disk.
package notebook
