// Package upload models the server side of image uploads: the object key layout every checkout
// writes to and the Grant recorded each time a presigned write URL is issued.
package upload
