package aws_handler

import (
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
)

type SecretManager struct {
	svc *secretsmanager.SecretsManager
}

func NewSecretManager(svc *secretsmanager.SecretsManager) *SecretManager {
	return &SecretManager{svc: svc}
}

func (s *SecretManager) GetSecretValue(secretID string) (string, error) {
	input := &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretID),
	}

	result, err := s.svc.GetSecretValue(input)
	if err != nil {
		return "", err
	}

	return *result.SecretString, nil
}

// GetSecretMap fetches a secret whose payload is a flat JSON object of
// string keys and values, the layout used for service credentials.
func (s *SecretManager) GetSecretMap(secretID string) (map[string]string, error) {
	raw, err := s.GetSecretValue(secretID)
	if err != nil {
		return nil, err
	}

	secrets := map[string]string{}
	if err := json.Unmarshal([]byte(raw), &secrets); err != nil {
		return nil, fmt.Errorf("secret %s is not a flat JSON object: %w", secretID, err)
	}
	return secrets, nil
}
