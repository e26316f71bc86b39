// Package transfer moves a repository credential between machines.
//
// The credential is serialized as a small key=value document and encrypted
// for a recipient with an external public-key tool (gpg). Import reverses
// the process and retries the decryption step, since gpg-agent may need a
// moment to prompt for or unlock the private key.
package transfer
