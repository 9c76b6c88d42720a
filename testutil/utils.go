package testutil

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"os"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
	"github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"
	"github.com/consensys/gnark-crypto/ecc/bn254/twistededwards/eddsa"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/iden3/go-iden3-crypto/babyjub"
	arbotree "github.com/vocdoni/arbo"
	"go.vocdoni.io/dvote/db"
	"go.vocdoni.io/dvote/db/pebbledb"
	"go.vocdoni.io/dvote/tree/arbo"
	"go.vocdoni.io/dvote/util"
)

// CensusKeyLen is the length in bytes of the keys of the test censuses, it
// fits the 160 levels of the census circuits.
const CensusKeyLen = 20

// CensusTestConfig is a configuration for generating a census proof for testing
// purposes. It includes the temp directory to store the database, the number of
// valid siblings, the total number of siblings, the key length, the hash
// function to use in the merkle tree, and the base field to use in the finite
// field.
type CensusTestConfig struct {
	Dir           string
	ValidSiblings int
	TotalSiblings int
	KeyLen        int
	Hash          arbotree.HashFunction
	BaseField     *big.Int
}

// TestCensusProofs is a structure to store the key, value, and siblings of a
// census proof for testing purposes.
type TestCensusProofs struct {
	Key      *big.Int
	Value    *big.Int
	Siblings []*big.Int
}

// TestCensus is a structure to store the root and proofs of a census for
// testing purposes.
type TestCensus struct {
	Root   *big.Int
	Proofs []*TestCensusProofs
}

// TestSignature is a structure to store the encoded public key and signature
// of a signed message for testing purposes.
type TestSignature struct {
	PublicKey []byte
	Signature []byte
}

// RandomMessage returns a random element of the BN254 scalar field.
func RandomMessage() (*big.Int, error) {
	var e fr.Element
	if _, err := e.SetRandom(); err != nil {
		return nil, err
	}
	return e.BigInt(new(big.Int)), nil
}

// msgBytes encodes msg as a 32 bytes big-endian field element.
func msgBytes(msg *big.Int) []byte {
	return msg.FillBytes(make([]byte, fr.Bytes))
}

// GenerateEdDSAAndSign generates a gnark-crypto EdDSA key pair over the BN254
// twisted Edwards curve and signs msg using MiMC. It returns the compressed
// public key and signature.
func GenerateEdDSAAndSign(msg *big.Int) (*TestSignature, error) {
	privKey, err := eddsa.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	sig, err := privKey.Sign(msgBytes(msg), mimc.NewMiMC())
	if err != nil {
		return nil, err
	}
	if valid, err := privKey.PublicKey.Verify(sig, msgBytes(msg), mimc.NewMiMC()); err != nil || !valid {
		return nil, fmt.Errorf("invalid signature")
	}
	return &TestSignature{
		PublicKey: privKey.PublicKey.Bytes(),
		Signature: sig,
	}, nil
}

// GenerateBabyJubJubAndSign generates an iden3 BabyJubJub key pair and signs
// msg using EdDSA-Poseidon. It returns the compressed public key and
// signature.
func GenerateBabyJubJubAndSign(msg *big.Int) (*TestSignature, error) {
	privKey := babyjub.NewRandPrivKey()
	sig := privKey.SignPoseidon(msg)
	pubKey := privKey.Public()
	if !pubKey.VerifyPoseidon(msg, sig) {
		return nil, fmt.Errorf("invalid signature")
	}
	pubKeyComp := pubKey.Compress()
	sigComp := sig.Compress()
	return &TestSignature{
		PublicKey: pubKeyComp[:],
		Signature: sigComp[:],
	}, nil
}

// GenerateAccountAndSign generates an Ethereum account and signs msg encoded
// as a 32 bytes hash. It returns the uncompressed public key and the 65 bytes
// [R || S || V] signature.
func GenerateAccountAndSign(msg *big.Int) (*TestSignature, error) {
	privKey, err := crypto.GenerateKey()
	if err != nil {
		return nil, err
	}
	sigBin, err := crypto.Sign(msgBytes(msg), privKey)
	if err != nil {
		return nil, err
	}
	pubKey := crypto.FromECDSAPub(&privKey.PublicKey)
	if valid := crypto.VerifySignature(pubKey, msgBytes(msg), sigBin[:64]); !valid {
		return nil, fmt.Errorf("invalid signature")
	}
	return &TestSignature{
		PublicKey: pubKey,
		Signature: sigBin,
	}, nil
}

// garbageS is the S scalar of the well-formed but meaningless signatures.
var garbageS = big.NewInt(12345)

// randomScalar returns a random scalar of the BN254 scalar field.
func randomScalar() (*big.Int, error) {
	return rand.Int(rand.Reader, fr.Modulus())
}

// GarbageEdDSASignature returns pubKey with a signature that decodes
// correctly but is not the signature of any message: R is a random point of
// the curve and S a fixed scalar.
func GarbageEdDSASignature(pubKey []byte) (*TestSignature, error) {
	k, err := randomScalar()
	if err != nil {
		return nil, err
	}
	curve := twistededwards.GetEdwardsCurve()
	var sig eddsa.Signature
	sig.R.ScalarMultiplication(&curve.Base, k)
	garbageS.FillBytes(sig.S[:])
	return &TestSignature{PublicKey: pubKey, Signature: sig.Bytes()}, nil
}

// GarbageBabyJubJubSignature returns pubKey with a signature that decodes
// correctly but is not the signature of any message: R8 is a random point of
// the subgroup and S a fixed scalar.
func GarbageBabyJubJubSignature(pubKey []byte) (*TestSignature, error) {
	k, err := randomScalar()
	if err != nil {
		return nil, err
	}
	sig := &babyjub.Signature{
		R8: babyjub.NewPoint().Mul(k, babyjub.B8),
		S:  new(big.Int).Set(garbageS),
	}
	sigComp := sig.Compress()
	return &TestSignature{PublicKey: pubKey, Signature: sigComp[:]}, nil
}

// GarbageECDSASignature returns pubKey with a [R || S || V] signature whose
// values are in range but random.
func GarbageECDSASignature(pubKey []byte) (*TestSignature, error) {
	r, err := randomScalar()
	if err != nil {
		return nil, err
	}
	sig := make([]byte, crypto.SignatureLength)
	r.Add(r, big.NewInt(1)).FillBytes(sig[:32])
	garbageS.FillBytes(sig[32:64])
	return &TestSignature{PublicKey: pubKey, Signature: sig}, nil
}

// bigIntToBytesLE encodes bi as 32 little-endian bytes, the encoding that
// arbo expects for the values of its Poseidon trees.
func bigIntToBytesLE(bi *big.Int) []byte {
	be := bi.FillBytes(make([]byte, 32))
	le := make([]byte, len(be))
	for i := range be {
		le[i] = be[len(be)-1-i]
	}
	return le
}

// GenerateCensusProofLE builds an arbo tree with the provided keys and values
// plus some random leaves, and returns the root and the inclusion proofs of
// the provided keys. Every field element is decoded from little-endian bytes.
// The database is created in conf.Dir and removed before returning.
func GenerateCensusProofLE(conf CensusTestConfig, ks [][]byte, vs []*big.Int) (*TestCensus, error) {
	if len(ks) != len(vs) {
		return nil, fmt.Errorf("keys and values length mismatch: %d != %d", len(ks), len(vs))
	}
	defer func() { _ = os.RemoveAll(conf.Dir) }()

	dbase, err := pebbledb.New(db.Options{Path: conf.Dir})
	if err != nil {
		return nil, err
	}
	tree, err := arbotree.NewTree(arbotree.Config{
		Database:     dbase,
		MaxLevels:    conf.TotalSiblings,
		HashFunction: conf.Hash,
	})
	if err != nil {
		return nil, err
	}

	// insert the user-supplied pairs
	keys := make([][]byte, len(ks))
	values := make([][]byte, len(vs))
	for i, k := range ks {
		keys[i] = arbotree.BigToFF(conf.BaseField, new(big.Int).SetBytes(k)).Bytes()
		values[i] = bigIntToBytesLE(vs[i])
		if err = tree.Add(keys[i], values[i]); err != nil {
			return nil, err
		}
	}
	// add random leaves so that some siblings are non-zero
	for i := 1; i < conf.ValidSiblings; i++ {
		rk := arbotree.BigToFF(conf.BaseField,
			new(big.Int).SetBytes(util.RandomBytes(conf.KeyLen))).Bytes()
		rv := new(big.Int).SetBytes(util.RandomBytes(8))
		if err = tree.Add(rk, bigIntToBytesLE(rv)); err != nil {
			return nil, err
		}
	}

	root, err := tree.Root()
	if err != nil {
		return nil, err
	}
	var proofs []*TestCensusProofs
	for i, k := range keys {
		_, _, packed, exist, err := tree.GenProof(k)
		if err != nil {
			return nil, err
		}
		if !exist {
			return nil, fmt.Errorf("key not found in tree")
		}
		unpacked, err := arbo.UnpackSiblings(tree.HashFunction(), packed)
		if err != nil {
			return nil, err
		}
		padded := make([]*big.Int, conf.TotalSiblings)
		for j := range padded {
			if j < len(unpacked) {
				padded[j] = arbo.BytesLEToBigInt(unpacked[j])
			} else {
				padded[j] = big.NewInt(0)
			}
		}
		if ok, _ := arbotree.CheckProof(tree.HashFunction(), k, values[i], root, packed); !ok {
			return nil, fmt.Errorf("arbotree proof verification failed")
		}
		proofs = append(proofs, &TestCensusProofs{
			Key:      arbo.BytesLEToBigInt(k),
			Value:    new(big.Int).Set(vs[i]),
			Siblings: padded,
		})
	}
	return &TestCensus{
		Root:   arbo.BytesLEToBigInt(root),
		Proofs: proofs,
	}, nil
}
