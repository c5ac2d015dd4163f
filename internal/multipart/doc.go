// Package multipart holds the rules the helper enforces around multipart uploads:
// the part number range, the part size window, and the collection of uploaded
// parts needed to complete an upload.
package multipart
