// Deploy command rolls out the KRWW token and sKRWW vault contracts to a Neo
// network and verifies the resulting deployment. Contracts must be compiled in
// advance (neo-go contract compile), the command takes their NEF and manifest
// files as produced by the compiler.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"go.uber.org/zap"

	rpctoken "github.com/wondermoney/krww-contract/rpc/token"
	rpcvault "github.com/wondermoney/krww-contract/rpc/vault"
)

// defaultCooldownMs is seven days, the production vault lock-up.
const defaultCooldownMs = 7 * 24 * int64(time.Hour/time.Millisecond)

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	walletPath := flag.String("wallet", "", "Path to the deployer NEP-6 wallet")
	walletPassword := flag.String("password", "", "Password of the deployer wallet account")
	tokenNEF := flag.String("token-nef", "token_contract.nef", "Path to the compiled token contract")
	tokenManifest := flag.String("token-manifest", "token_contract.manifest.json", "Path to the token contract manifest")
	vaultNEF := flag.String("vault-nef", "vault_contract.nef", "Path to the compiled vault contract")
	vaultManifest := flag.String("vault-manifest", "vault_contract.manifest.json", "Path to the vault contract manifest")
	cooldownMs := flag.Int64("cooldown", defaultCooldownMs, "Vault withdrawal cooldown in milliseconds")

	flag.Parse()

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *walletPath == "":
		log.Fatal("missing deployer wallet")
	case *cooldownMs < 0:
		log.Fatal("negative cooldown duration")
	}

	l, err := zap.NewProduction()
	if err != nil {
		log.Fatal(fmt.Errorf("init logger: %w", err))
	}
	defer l.Sync()

	err = deploy(l, *neoRPCEndpoint, *walletPath, *walletPassword,
		*tokenNEF, *tokenManifest, *vaultNEF, *vaultManifest, *cooldownMs)
	if err != nil {
		l.Fatal("deployment failed", zap.Error(err))
	}
}

func deploy(l *zap.Logger, endpoint, walletPath, password,
	tokenNEF, tokenManifest, vaultNEF, vaultManifest string, cooldownMs int64) error {
	ctx := context.Background()

	c, err := rpcclient.New(ctx, endpoint, rpcclient.Options{})
	if err != nil {
		return fmt.Errorf("init RPC client: %w", err)
	}
	defer c.Close()

	if err := c.Init(); err != nil {
		return fmt.Errorf("RPC client handshake: %w", err)
	}

	w, err := wallet.NewWalletFromFile(walletPath)
	if err != nil {
		return fmt.Errorf("open wallet: %w", err)
	}

	acc := w.Accounts[0]
	if err := acc.Decrypt(password, w.Scrypt); err != nil {
		return fmt.Errorf("decrypt wallet account: %w", err)
	}

	admin := acc.ScriptHash()
	l.Info("deploying contracts", zap.Stringer("admin", admin),
		zap.Int64("cooldown (ms)", cooldownMs))

	act, err := actor.NewSimple(c, acc)
	if err != nil {
		return fmt.Errorf("init actor: %w", err)
	}
	mgmt := management.New(act)

	tokenHash, err := deployContract(l, act, mgmt, "token", tokenNEF, tokenManifest,
		[]any{admin})
	if err != nil {
		return err
	}

	vaultHash, err := deployContract(l, act, mgmt, "vault", vaultNEF, vaultManifest,
		[]any{admin, tokenHash, cooldownMs})
	if err != nil {
		return err
	}

	return verify(l, invoker.New(c, nil), admin, tokenHash, vaultHash)
}

// deployContract sends a deployment transaction and waits for it to persist.
// The resulting contract address is known in advance from the deployer account
// and contract name, returned after the deployment is confirmed on chain.
func deployContract(l *zap.Logger, act *actor.Actor, mgmt *management.Contract,
	label, nefPath, manifestPath string, data []any) (util.Uint160, error) {
	exe, manif, err := readContract(nefPath, manifestPath)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("read %s contract: %w", label, err)
	}

	hash := state.CreateContractHash(act.Sender(), exe.Checksum, manif.Name)

	txHash, vub, err := mgmt.Deploy(exe, manif, data)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("deploy %s contract: %w", label, err)
	}

	l.Info("deployment transaction sent", zap.String("contract", label),
		zap.Stringer("tx", txHash), zap.Uint32("vub", vub))

	_, err = act.Wait(txHash, vub, nil)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("await %s deployment: %w", label, err)
	}

	l.Info("contract deployed", zap.String("contract", label), zap.Stringer("address", hash))
	return hash, nil
}

func readContract(nefPath, manifestPath string) (*nef.File, *manifest.Manifest, error) {
	nefBytes, err := os.ReadFile(nefPath)
	if err != nil {
		return nil, nil, fmt.Errorf("read NEF: %w", err)
	}
	exe, err := nef.FileFromBytes(nefBytes)
	if err != nil {
		return nil, nil, fmt.Errorf("parse NEF: %w", err)
	}

	manifestBytes, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, nil, fmt.Errorf("read manifest: %w", err)
	}
	manif := new(manifest.Manifest)
	if err := json.Unmarshal(manifestBytes, manif); err != nil {
		return nil, nil, fmt.Errorf("parse manifest: %w", err)
	}

	return &exe, manif, nil
}

// verify reads the freshly deployed contracts back and reports their state:
// token metadata, vault wiring and the role set of the admin account.
func verify(l *zap.Logger, inv *invoker.Invoker, admin, tokenHash, vaultHash util.Uint160) error {
	token := rpctoken.NewReader(inv, tokenHash)
	vault := rpcvault.NewReader(inv, vaultHash)

	symbol, err := token.Symbol()
	if err != nil {
		return fmt.Errorf("token symbol: %w", err)
	}
	decimals, err := token.Decimals()
	if err != nil {
		return fmt.Errorf("token decimals: %w", err)
	}
	supply, err := token.TotalSupply()
	if err != nil {
		return fmt.Errorf("token total supply: %w", err)
	}
	l.Info("token contract state", zap.Stringer("address", tokenHash),
		zap.String("symbol", symbol), zap.Int("decimals", decimals),
		zap.Int64("totalSupply", supply.Int64()))

	asset, err := vault.Asset()
	if err != nil {
		return fmt.Errorf("vault asset: %w", err)
	}
	if !asset.Equals(tokenHash) {
		return fmt.Errorf("vault is bound to unexpected asset %s", asset.StringLE())
	}
	cooldown, err := vault.CooldownPeriod()
	if err != nil {
		return fmt.Errorf("vault cooldown: %w", err)
	}
	rate, err := vault.RewardRate()
	if err != nil {
		return fmt.Errorf("vault reward rate: %w", err)
	}
	l.Info("vault contract state", zap.Stringer("address", vaultHash),
		zap.Stringer("asset", asset), zap.Int64("cooldown (ms)", cooldown.Int64()),
		zap.Int64("rewardRate (bp)", rate.Int64()))

	for _, check := range []struct {
		label  string
		reader interface {
			HasRole(role []byte, account util.Uint160) (bool, error)
			AdminRole() ([]byte, error)
		}
		role func() ([]byte, error)
		name string
	}{
		{"token", token, token.AdminRole, "DEFAULT_ADMIN_ROLE"},
		{"token", token, token.MinterRole, "MINTER_ROLE"},
		{"token", token, token.PauserRole, "PAUSER_ROLE"},
		{"token", token, token.BlacklistManagerRole, "BLACKLIST_MANAGER_ROLE"},
		{"vault", vault, vault.AdminRole, "DEFAULT_ADMIN_ROLE"},
		{"vault", vault, vault.VaultManagerRole, "VAULT_MANAGER_ROLE"},
		{"vault", vault, vault.PauserRole, "PAUSER_ROLE"},
		{"vault", vault, vault.BlacklistManagerRole, "BLACKLIST_MANAGER_ROLE"},
	} {
		role, err := check.role()
		if err != nil {
			return fmt.Errorf("%s %s id: %w", check.label, check.name, err)
		}
		ok, err := check.reader.HasRole(role, admin)
		if err != nil {
			return fmt.Errorf("%s %s check: %w", check.label, check.name, err)
		}
		if !ok {
			return fmt.Errorf("admin is missing %s %s", check.label, check.name)
		}
		l.Info("role verified", zap.String("contract", check.label),
			zap.String("role", check.name), zap.Stringer("holder", admin))
	}

	return nil
}
