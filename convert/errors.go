package convert

import "github.com/teranos/tsbridge/errors"

// Conversion errors. All are raised synchronously by Convert and abort
// conversion of the one offending type; a registry the caller is filling
// is never left half-updated because nothing is registered until Convert
// returns successfully.
var (
	// ErrEmptyVariantSet indicates a variant set with no variants.
	ErrEmptyVariantSet = errors.New("variant set has no variants")

	// ErrFlattenTarget indicates flatten applied to a non-object member.
	ErrFlattenTarget = errors.New("flatten target is not an object type")

	// ErrUnpairedIndexKey indicates an index attribute without a key, or
	// vice versa.
	ErrUnpairedIndexKey = errors.New("index and key attributes must appear as a pair")

	// ErrUnknownRenameAll indicates an unrecognized rename-all policy token.
	ErrUnknownRenameAll = errors.New("unknown rename-all policy")

	// ErrEmptyPlaceholder indicates a ${} placeholder with no type expression.
	ErrEmptyPlaceholder = errors.New("empty placeholder in pattern")

	// ErrUnterminatedPlaceholder indicates a ${ opener with no closing brace.
	ErrUnterminatedPlaceholder = errors.New("unterminated placeholder in pattern")
)
