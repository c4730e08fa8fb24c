package helper

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ChunkUUID derives a stable UUID for a chunk from its source id and
// position, so re-ingesting the same video addresses the same records.
func ChunkUUID(sourceID string, index int) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(sourceID+":"+strconv.Itoa(index))).String()
}

// pretty print
func PrettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Warn().Msg("Error pretty printing")
	}
	fmt.Println(string(b))
}
