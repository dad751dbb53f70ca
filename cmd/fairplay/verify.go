package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/lox/fairplay/internal/commitment"
	"github.com/lox/fairplay/internal/display"
)

var errMismatch = errors.New("HMAC does not match: the move was changed or the key is wrong")

type VerifyCmd struct {
	Key  string `required:"" help:"Disclosed HMAC key (64 hex characters)"`
	Move string `required:"" help:"Move the computer revealed"`
	HMAC string `name:"hmac" required:"" help:"HMAC published before you chose (64 hex characters)"`
}

func (c *VerifyCmd) Run(_ *Globals) error {
	key, err := commitment.ParseKey(c.Key)
	if err != nil {
		return err
	}
	published, err := commitment.ParseCommitment(c.HMAC)
	if err != nil {
		return err
	}

	p := display.New(os.Stdout)
	if !commitment.Verify(key, c.Move, published) {
		fmt.Println(p.Error("Mismatch"))
		return errMismatch
	}
	fmt.Println(p.Styles().Success.Render("Verified: ") + fmt.Sprintf("HMAC-SHA256(key, %q) matches the published HMAC", c.Move))
	return nil
}
