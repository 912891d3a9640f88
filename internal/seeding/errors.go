package seeding

import (
	goerrors "github.com/goliatone/go-errors"
)

const (
	seedReadFailedCode  = "SEED_READ_FAILED"
	seedWriteFailedCode = "SEED_WRITE_FAILED"
	seedTemplateCode    = "SEED_TEMPLATE_INVALID"
)

func wrapReadError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "seed read failed").
		WithTextCode(seedReadFailedCode)
}

func wrapWriteError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "seed write failed").
		WithTextCode(seedWriteFailedCode)
}

func wrapTemplateError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "seed template invalid").
		WithTextCode(seedTemplateCode)
}
