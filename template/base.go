package template

import (
	"errors"

	"github.com/flosch/pongo2/v6"
	"github.com/krainode/rpcbot/util"
	"github.com/rs/zerolog/log"
)

// formatTime filter, epoch milliseconds in
var _ = func() interface{} {
	pongo2.RegisterFilter("formatTime", func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		return pongo2.AsValue(util.FormatTime(int64(in.Integer()))), nil
	})
	return nil
}()

// formatLatency filter, milliseconds in
var _ = func() interface{} {
	pongo2.RegisterFilter("formatLatency", func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		return pongo2.AsValue(util.FormatLatency(int64(in.Integer()))), nil
	})
	return nil
}()

var ErrRander = errors.New("Something went wrong, please try again.")

// telegram caps messages at 4096 characters; leave room for the frame
const maxBodyRunes = 3000

func rander(src string, ctx pongo2.Context) (string, error) {
	tpl, err := pongo2.FromString(src)
	if err != nil {
		log.Error().Err(err).Send()
		return "", ErrRander
	}

	out, err := tpl.Execute(ctx)
	if err != nil {
		log.Error().Err(err).Send()
		return "", ErrRander
	}
	return out, nil
}
