package main

import (
	"flag"
	"fmt"
	"os"

	"mpesarelay/internal/domain/credential"
)

// Prints the SecurityCredential for an initiator password, e.g. to seed
// MPESA_SECURITY_CREDENTIAL checks or call Daraja by hand.
func main() {
	certPath := flag.String("cert", "", "path to the Safaricom certificate (PEM); empty prints the sandbox credential")
	flag.Parse()

	if *certPath == "" {
		fmt.Println(credential.SandboxSecurityCredential)
		return
	}
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: seccred -cert <path> <initiator-password>")
		os.Exit(1)
	}

	pem, err := os.ReadFile(*certPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	enc, err := credential.EncryptWithCertificate(pem, flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(enc)
}
