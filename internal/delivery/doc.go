// Package delivery hands produced descriptor files to the ingestion server.
//
// The pipeline only sees the Opener and Uploader interfaces: Open prepares a
// session, Upload sends one local file in binary mode, Close ends the session.
// The FTP implementation validates its settings before dialing, so no upload is
// attempted when host, user, password, or directory is missing. There are no
// retries; the first failed upload is returned to the caller.
package delivery
