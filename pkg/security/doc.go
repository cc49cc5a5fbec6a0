/*
Package security implements the login surface of a session-establishment
configuration: anonymous sessions and plaintext username/password sessions.
TLS, channel encryption and certificate management are out of scope, so
this package has no certificate-handling code at all, only the credential
check a session-establishment request runs against.
*/
package security
