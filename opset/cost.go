// Package opset implements the concrete operator dialects spec.md §4.6
// leaves abstract behind the evaluator.OpSet interface: Default, covering
// every operator family with the exact per-family cost shape, and Quoted,
// a minimal embedding dialect exposing only quote/apply/softfork.
package opset

// Cost constants, one per operator family, each used by exactly the
// operators in that family — no operator hardcodes a literal cost. These
// are pinned to the well-known public CLVM reference cost table (see
// DESIGN.md's opset entry for the provenance note: the exact source file
// was not present in the retrieved reference pack, so these are entered
// from the published reference costs rather than copied from a pack
// file).
const (
	mallocCostPerByte = 10

	consCost   = 50
	firstCost  = 30
	restCost   = 30
	listpCost  = 19
	ifCost     = 33
	eqBaseCost = 117
	eqCostPerByte = 1
	raiseCost  = 500

	arithBaseCost    = 99
	arithCostPerArg  = 320
	arithCostPerByte = 3

	mulBaseCost               = 92
	mulCostPerOp              = 885
	mulLinearCostPerByte      = 6
	mulSquareCostPerByteDiv   = 128

	divBaseCost    = 988
	divCostPerByte = 4

	divmodBaseCost    = 1116
	divmodCostPerByte = 6

	logBaseCost    = 100
	logCostPerArg  = 264
	logCostPerByte = 3

	lognotBaseCost    = 331
	lognotCostPerByte = 3

	ashBaseCost    = 596
	ashCostPerByte = 3
	lshBaseCost    = 277
	lshCostPerByte = 3

	grBaseCost     = 498
	grCostPerByte  = 2
	grsBaseCost    = 117
	grsCostPerByte = 1
	boolBaseCost   = 200
	boolCostPerArg = 300

	sha256BaseCost    = 87
	sha256CostPerArg  = 134
	sha256CostPerByte = 2
	keccak256BaseCost = 87
	keccak256CostPerArg  = 134
	keccak256CostPerByte = 2

	concatBaseCost    = 142
	concatCostPerArg  = 135
	concatCostPerByte = 3
	strlenBaseCost    = 173
	strlenCostPerByte = 1
	substrCost        = 10

	pointAddBaseCost   = 101094
	pointAddCostPerArg = 1343980
	pubkeyBaseCost     = 1325730
	pubkeyCostPerByte  = 38

	bls12381G1AddCost      = 101094
	bls12381G1SubCost      = 101094
	bls12381G1MultiplyCost = 418743
	bls12381G1NegateCost   = 19717
	bls12381G2AddCost      = 181849
	bls12381G2SubCost      = 181849
	bls12381G2MultiplyCost = 1252071
	bls12381G2NegateCost   = 40053
	bls12381MapToG1Cost    = 76652
	bls12381MapToG2Cost    = 176537
	blsPairingBaseCost     = 1684944
	blsPairingCostPerArg   = 3412928
	blsVerifyBaseCost      = 1150000
	blsVerifyCostPerArg    = 1220000

	secp256k1VerifyCost = 1850000
	secp256r1VerifyCost = 1850000

	coinidBaseCost = sha256BaseCost
)
