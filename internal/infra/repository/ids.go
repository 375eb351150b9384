package repository

import "github.com/google/uuid"

// id列はuuid型。形式が違うIDはDBに投げると22P02になるので、該当なしとして扱う
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
