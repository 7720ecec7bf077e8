package core

// ValidateRequest checks shape, version and the semantic rules every backend
// relies on. It never touches the result slot.
func ValidateRequest(req *Request) error {
	if req == nil {
		return Errorf(ErrInvalidArgument, "request is nil")
	}
	if req.StructSize < RequestMinSize {
		return Errorf(ErrInvalidArgument, "request struct size %d below minimum %d", req.StructSize, RequestMinSize)
	}
	if req.ABIVersion != ABIVersion {
		return Errorf(ErrInvalidArgument, "request ABI version %s does not match runtime %s",
			VersionString(req.ABIVersion), VersionString(ABIVersion))
	}
	if req.Message == "" {
		return Errorf(ErrInvalidArgument, "message is required")
	}

	seen := make(map[ButtonID]struct{}, len(req.Buttons))
	for i, b := range req.Buttons {
		if b.StructSize < ButtonSize {
			return Errorf(ErrInvalidArgument, "button %d struct size %d below minimum %d", i, b.StructSize, ButtonSize)
		}
		if b.Label == "" {
			return Errorf(ErrInvalidArgument, "button %d has no label", i)
		}
		if !b.ID.Valid() {
			return Errorf(ErrInvalidArgument, "button %d has invalid id %s", i, b.ID)
		}
		if _, dup := seen[b.ID]; dup {
			return Errorf(ErrInvalidArgument, "button id %s used more than once", b.ID)
		}
		seen[b.ID] = struct{}{}
	}

	if in := req.Input; in != nil {
		if in.StructSize < InputSize {
			return Errorf(ErrInvalidArgument, "input struct size %d below minimum %d", in.StructSize, InputSize)
		}
		if in.Mode > InputCombo {
			return Errorf(ErrInvalidArgument, "input mode %s out of range", in.Mode)
		}
		if in.Mode == InputCombo && len(in.Items) == 0 {
			return Errorf(ErrInvalidArgument, "combo input without items")
		}
	}

	if sec := req.Secondary; sec != nil && sec.StructSize < SecondarySize {
		return Errorf(ErrInvalidArgument, "secondary struct size %d below minimum %d", sec.StructSize, SecondarySize)
	}

	if req.Timeout < 0 {
		return Errorf(ErrInvalidArgument, "negative timeout %s", req.Timeout)
	}
	if req.TimeoutButton != ButtonNone && !req.TimeoutButton.Valid() {
		return Errorf(ErrInvalidArgument, "timeout button id %s is reserved", req.TimeoutButton)
	}
	return nil
}

// ValidateResult checks the caller's result slot.
func ValidateResult(res *Result) error {
	if res == nil {
		return Errorf(ErrInvalidArgument, "result is nil")
	}
	if res.StructSize < ResultMinSize {
		return Errorf(ErrInvalidArgument, "result struct size %d below minimum %d", res.StructSize, ResultMinSize)
	}
	return nil
}

// ValidateInitialize checks initialization options. Nil options are valid and
// mean "defaults".
func ValidateInitialize(opts *InitializeOptions) error {
	if opts == nil {
		return nil
	}
	if opts.StructSize < InitMinSize {
		return Errorf(ErrInvalidArgument, "initialize struct size %d below minimum %d", opts.StructSize, InitMinSize)
	}
	if opts.ABIVersion != ABIVersion {
		return Errorf(ErrInvalidArgument, "initialize ABI version %s does not match runtime %s",
			VersionString(opts.ABIVersion), VersionString(ABIVersion))
	}
	return nil
}

// ResetResult puts res into the baseline every call starts from.
func ResetResult(res *Result) {
	res.StructSize = ResultSize
	res.Button = ButtonNone
	res.CheckboxChecked = false
	res.InputValue = nil
	res.WasTimeout = false
	res.Status = StatusOK
}
