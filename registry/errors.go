package registry

import "github.com/joshuapare/regkit/pkg/types"

// translate turns a non-success status into a *types.NativeError carrying
// the engine's message for it. Message lookup failures fall back to
// types.UnknownErrorMessage.
func (r *Registry) translate(op string, st types.Status) error {
	if st == types.StatusSuccess {
		return nil
	}
	msg, ok := r.eng.FormatMessage(st)
	if !ok || msg == "" {
		msg = types.UnknownErrorMessage
	}
	r.log.Debug("registry primitive failed", "op", op, "status", uint32(st), "message", msg)
	return &types.NativeError{Op: op, Status: st, Msg: msg}
}
