package player

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/hollowvale/mud/internal"
	"github.com/hollowvale/mud/internal/game"
	"github.com/hollowvale/mud/internal/storage"
)

const maxPasswordTries = 3

// loginFlow walks a fresh connection through authentication, creating the
// character when the name is unknown.
type loginFlow struct {
	chars storage.Storer[*game.Character]
	races *storage.SelectableStorer[*game.Race]
}

// Run authenticates the connection and returns the character id and the
// loaded (or newly created) character.
func (f *loginFlow) Run(rw io.ReadWriter) (storage.Identifier, *game.Character, error) {
	if _, err := rw.Write([]byte("Welcome to Hollowvale!\n")); err != nil {
		return "", nil, err
	}

	for {
		username, err := internal.Prompt(rw, "By what name do you wish to be known? ",
			internal.WithValidator(func(str string) (bool, string) {
				if len(str) == 0 {
					return false, "Invalid name, please try another.\n"
				}
				for _, r := range str {
					if !unicode.IsLetter(r) {
						return false, "Names may only contain letters.\n"
					}
				}
				return true, ""
			}))
		if err != nil {
			return "", nil, err
		}

		charId := storage.Identifier(strings.ToLower(username))
		char := f.chars.Get(string(charId))

		if char == nil {
			char, err = f.newCharacter(rw, username)
			if err != nil {
				return "", nil, err
			}
			if char == nil {
				// Name not confirmed; start over.
				continue
			}
			if err := f.chars.Save(string(charId), char); err != nil {
				return "", nil, fmt.Errorf("saving new character: %w", err)
			}
			return charId, char, nil
		}

		_, err = internal.Prompt(rw, "Password: ",
			internal.WithMaxTries(maxPasswordTries),
			internal.WithValidator(func(str string) (bool, string) {
				if bcrypt.CompareHashAndPassword([]byte(char.Password), []byte(str)) != nil {
					return false, "Wrong password.\n"
				}
				return true, ""
			}))
		if err != nil {
			return "", nil, err
		}

		return charId, char, nil
	}
}

// newCharacter walks character creation: password, gender, race.
func (f *loginFlow) newCharacter(rw io.ReadWriter, username string) (*game.Character, error) {
	ok, err := internal.PromptYN(rw, fmt.Sprintf("Did I get that right, %s (Y/N)? ", username))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var hash []byte
	for {
		passOne, err := internal.Prompt(rw, fmt.Sprintf("Give me a password for %s: ", username),
			internal.WithValidator(func(str string) (bool, string) {
				if len(str) == 0 || strings.EqualFold(str, username) {
					return false, "Illegal password.\n"
				}
				return true, ""
			}))
		if err != nil {
			return nil, err
		}

		passTwo, err := internal.Prompt(rw, "Please retype password: ")
		if err != nil {
			return nil, err
		}

		if passOne != passTwo {
			if _, err := rw.Write([]byte("Passwords don't match... start over.\n")); err != nil {
				return nil, err
			}
			continue
		}

		hash, err = bcrypt.GenerateFromPassword([]byte(passOne), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		break
	}

	char := game.NewCharacter(username, string(hash))

	gender, err := promptGender(rw)
	if err != nil {
		return nil, err
	}
	char.Gender = gender

	if f.races != nil && len(f.races.GetAll()) > 0 {
		raceId, err := f.races.Prompt(rw, "What is your race?")
		if err != nil {
			return nil, err
		}
		char.Race = storage.Identifier(raceId)
		if race := f.races.Get(raceId); race != nil && race.BaseCarryWeight > 0 {
			char.MaxCarryWeight = race.BaseCarryWeight
			char.Inventory.MaxWeight = race.BaseCarryWeight
		}
	}

	return char, nil
}

func promptGender(rw io.ReadWriter) (game.Gender, error) {
	sel, err := internal.Prompt(rw, "Are you male (m), female (f), or nonbinary (n)? ",
		internal.WithValidator(func(str string) (bool, string) {
			switch strings.ToLower(str) {
			case "m", "male", "f", "female", "n", "nonbinary":
				return true, ""
			}
			return false, "Enter 'm', 'f', or 'n'.\n"
		}))
	if err != nil {
		return "", err
	}

	switch strings.ToLower(sel) {
	case "m", "male":
		return game.GenderMale, nil
	case "f", "female":
		return game.GenderFemale, nil
	default:
		return game.GenderNonbinary, nil
	}
}
