package ecdsa

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/test"
	"github.com/ethereum/go-ethereum/crypto"
	qt "github.com/frankban/quicktest"
	"github.com/vocdoni/gnark-leaf-gadgets/signature"
	"github.com/vocdoni/gnark-leaf-gadgets/testutil"
)

type testVerifyCircuit struct {
	PublicKey PublicKey
	Signature Signature
	Msg       frontend.Variable `gnark:",public"`
	Valid     frontend.Variable `gnark:",public"`
}

func (c *testVerifyCircuit) Define(api frontend.API) error {
	valid, err := Scheme{}.Verify(api, c.PublicKey, c.Signature, c.Msg)
	if err != nil {
		return err
	}
	api.AssertIsEqual(valid, c.Valid)
	return nil
}

func testVerifyAssignment(c *qt.C, s *testutil.TestSignature, msg any, valid int) *testVerifyCircuit {
	assignment := &testVerifyCircuit{Msg: msg, Valid: valid}
	c.Assert(Scheme{}.AssignPublicKey(&assignment.PublicKey, s.PublicKey), qt.IsNil)
	c.Assert(Scheme{}.AssignSignature(&assignment.Signature, s.Signature), qt.IsNil)
	return assignment
}

func TestVerify(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping emulated ECDSA test in short mode")
	}
	c := qt.New(t)
	msg, err := testutil.RandomMessage()
	c.Assert(err, qt.IsNil)
	otherMsg, err := testutil.RandomMessage()
	c.Assert(err, qt.IsNil)
	s, err := testutil.GenerateAccountAndSign(msg)
	c.Assert(err, qt.IsNil)

	field := ecc.BN254.ScalarField()
	c.Assert(test.IsSolved(&testVerifyCircuit{}, testVerifyAssignment(c, s, msg, 1), field), qt.IsNil)
	c.Assert(test.IsSolved(&testVerifyCircuit{}, testVerifyAssignment(c, s, msg, 0), field), qt.IsNotNil)
	c.Assert(test.IsSolved(&testVerifyCircuit{}, testVerifyAssignment(c, s, otherMsg, 0), field), qt.IsNil)

	// R || S without the recovery id is accepted too
	short := &testutil.TestSignature{PublicKey: s.PublicKey, Signature: s.Signature[:64]}
	c.Assert(test.IsSolved(&testVerifyCircuit{}, testVerifyAssignment(c, short, msg, 1), field), qt.IsNil)
}

type testPublicKeyHashCircuit struct {
	PublicKey PublicKey
	Address   frontend.Variable `gnark:",public"`
}

func (c *testPublicKeyHashCircuit) Define(api frontend.API) error {
	addr, err := Scheme{}.PublicKeyHash(api, c.PublicKey)
	if err != nil {
		return err
	}
	api.AssertIsEqual(addr, c.Address)
	return nil
}

func TestPublicKeyHash(t *testing.T) {
	c := qt.New(t)
	msg, err := testutil.RandomMessage()
	c.Assert(err, qt.IsNil)
	s, err := testutil.GenerateAccountAndSign(msg)
	c.Assert(err, qt.IsNil)
	addr, err := HashPublicKey(s.PublicKey)
	c.Assert(err, qt.IsNil)

	// the compressed encoding resolves to the same address
	pk, err := crypto.UnmarshalPubkey(s.PublicKey)
	c.Assert(err, qt.IsNil)
	compAddr, err := HashPublicKey(crypto.CompressPubkey(pk))
	c.Assert(err, qt.IsNil)
	c.Assert(compAddr.Cmp(addr), qt.Equals, 0)

	assignment := &testPublicKeyHashCircuit{Address: addr}
	c.Assert(Scheme{}.AssignPublicKey(&assignment.PublicKey, s.PublicKey), qt.IsNil)
	c.Assert(test.IsSolved(&testPublicKeyHashCircuit{}, assignment, ecc.BN254.ScalarField()), qt.IsNil)
}

func TestAssignMalformed(t *testing.T) {
	c := qt.New(t)
	var pk PublicKey
	var sig Signature
	c.Assert(Scheme{}.AssignPublicKey(&pk, make([]byte, 65)), qt.ErrorIs, signature.ErrInvalidPublicKey)
	c.Assert(Scheme{}.AssignSignature(&sig, make([]byte, 20)), qt.ErrorIs, signature.ErrInvalidSignature)
	// r = s = 0
	c.Assert(Scheme{}.AssignSignature(&sig, make([]byte, 65)), qt.ErrorIs, signature.ErrInvalidSignature)
}
