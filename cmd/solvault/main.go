// Copyright (c) 2025 The Solvault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/solvault/solvault/auditdb"
	"github.com/solvault/solvault/program"
	"github.com/solvault/solvault/schema"
	"github.com/solvault/solvault/state"
	"github.com/solvault/solvault/token"
)

var (
	version   string
	gitCommit string
)

func fullVersion() string {
	if gitCommit == "" {
		return version + "-dev"
	}
	return fmt.Sprintf("%s-%s", version, gitCommit)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "Solvault",
		Usage:     "NFT staking vault",
		Copyright: "2025 The Solvault developers",
		Flags: []cli.Flag{
			dataDirFlag,
			verbosityFlag,
		},
		Commands: []cli.Command{
			{
				Name:   "init",
				Usage:  "initialize the vault and take reward mint authority",
				Flags:  []cli.Flag{signerFlag, rewardMintFlag, collectionFlag, rateFlag},
				Action: initAction,
			},
			{
				Name:   "stake",
				Usage:  "stake an NFT into vault custody",
				Flags:  []cli.Flag{signerFlag, nftMintFlag, nftAccountFlag},
				Action: stakeAction,
			},
			{
				Name:   "unstake",
				Usage:  "return a staked NFT to its owner",
				Flags:  []cli.Flag{signerFlag, nftMintFlag, nftAccountFlag},
				Action: unstakeAction,
			},
			{
				Name:   "claim",
				Usage:  "claim pending staking rewards",
				Flags:  []cli.Flag{signerFlag, rewardMintFlag},
				Action: claimAction,
			},
			{
				Name:   "pause",
				Usage:  "pause deposits and reward minting",
				Flags:  []cli.Flag{signerFlag},
				Action: pauseAction,
			},
			{
				Name:   "unpause",
				Usage:  "lift a pause",
				Flags:  []cli.Flag{signerFlag},
				Action: unpauseAction,
			},
			{
				Name:   "status",
				Usage:  "print the vault record",
				Action: statusAction,
			},
			{
				Name:   "user",
				Usage:  "print a user's stake record",
				Flags:  []cli.Flag{userFlag},
				Action: userAction,
			},
			{
				Name:   "events",
				Usage:  "query the audit trail",
				Flags:  []cli.Flag{eventNameFlag, userFlag, limitFlag},
				Action: eventsAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initAction(ctx *cli.Context) error {
	initLogger(ctx)
	authority, err := pubkeyArg(ctx, signerFlag)
	if err != nil {
		return err
	}
	rewardMint, err := pubkeyArg(ctx, rewardMintFlag)
	if err != nil {
		return err
	}
	collection, err := pubkeyArg(ctx, collectionFlag)
	if err != nil {
		return err
	}

	inst, err := openInstance(ctx)
	if err != nil {
		return err
	}
	defer inst.close()

	// Bootstrap the reward mint record if this is a fresh local store,
	// with the initializer as its authority.
	st := state.New(inst.store)
	if exists, err := st.Exists(rewardMint); err != nil {
		return err
	} else if !exists {
		if err := token.CreateMint(st, rewardMint, &authority, 9); err != nil {
			return err
		}
		if err := st.Commit(); err != nil {
			return err
		}
	}

	receipt, err := inst.engine.InitializeVault(
		program.SignedBy(authority), authority, rewardMint, collection, ctx.Uint64(rateFlag.Name))
	if err != nil {
		return err
	}
	fmt.Println("vault initialized at", inst.engine.VaultAddress())
	fmt.Println("timestamp:", receipt.Timestamp)
	return nil
}

func stakeAction(ctx *cli.Context) error {
	return nftAction(ctx, "staked", (*program.Engine).StakeNft)
}

func unstakeAction(ctx *cli.Context) error {
	return nftAction(ctx, "unstaked", (*program.Engine).UnstakeNft)
}

func nftAction(
	ctx *cli.Context,
	verb string,
	fn func(*program.Engine, program.Signers, solana.PublicKey, solana.PublicKey, solana.PublicKey) (*program.Receipt, error),
) error {
	initLogger(ctx)
	user, err := pubkeyArg(ctx, signerFlag)
	if err != nil {
		return err
	}
	nftMint, err := pubkeyArg(ctx, nftMintFlag)
	if err != nil {
		return err
	}
	nftAccount, err := pubkeyArg(ctx, nftAccountFlag)
	if err != nil {
		return err
	}

	inst, err := openInstance(ctx)
	if err != nil {
		return err
	}
	defer inst.close()

	receipt, err := fn(inst.engine, program.SignedBy(user), user, nftMint, nftAccount)
	if err != nil {
		return err
	}
	fmt.Printf("%s %s at %d\n", verb, nftMint, receipt.Timestamp)
	return nil
}

func claimAction(ctx *cli.Context) error {
	initLogger(ctx)
	user, err := pubkeyArg(ctx, signerFlag)
	if err != nil {
		return err
	}
	rewardMint, err := pubkeyArg(ctx, rewardMintFlag)
	if err != nil {
		return err
	}

	inst, err := openInstance(ctx)
	if err != nil {
		return err
	}
	defer inst.close()

	receipt, err := inst.engine.ClaimRewards(program.SignedBy(user), user, rewardMint)
	if err != nil {
		return err
	}
	for _, ev := range receipt.Events {
		if claimed, ok := ev.(*program.RewardsClaimed); ok {
			rewardAddr, _, _ := schema.RewardAccountAddress(user)
			fmt.Printf("claimed %d base units into %s\n", claimed.Amount, rewardAddr)
		}
	}
	return nil
}

func pauseAction(ctx *cli.Context) error {
	return switchAction(ctx, "paused", (*program.Engine).PauseVault)
}

func unpauseAction(ctx *cli.Context) error {
	return switchAction(ctx, "unpaused", (*program.Engine).UnpauseVault)
}

func switchAction(
	ctx *cli.Context,
	verb string,
	fn func(*program.Engine, program.Signers, solana.PublicKey) (*program.Receipt, error),
) error {
	initLogger(ctx)
	signer, err := pubkeyArg(ctx, signerFlag)
	if err != nil {
		return err
	}

	inst, err := openInstance(ctx)
	if err != nil {
		return err
	}
	defer inst.close()

	receipt, err := fn(inst.engine, program.SignedBy(signer), signer)
	if err != nil {
		return err
	}
	fmt.Printf("vault %s at %d\n", verb, receipt.Timestamp)
	return nil
}

func statusAction(ctx *cli.Context) error {
	initLogger(ctx)
	inst, err := openInstance(ctx)
	if err != nil {
		return err
	}
	defer inst.close()

	status, err := inst.engine.Status()
	if err != nil {
		return err
	}
	v := status.Vault
	fmt.Println("vault:          ", status.VaultAddr)
	fmt.Println("authority:      ", v.Authority)
	fmt.Println("reward mint:    ", v.RewardTokenMint)
	fmt.Println("collection:     ", v.CollectionMint)
	fmt.Println("rate:           ", v.RewardRatePerSecond)
	fmt.Println("total staked:   ", v.TotalStaked)
	fmt.Println("paused:         ", v.Paused)
	fmt.Println("last update:    ", v.LastUpdateTimestamp)
	fmt.Println("stakes today:   ", v.DailyLimit.StakesToday)
	fmt.Println("claims today:   ", v.DailyLimit.ClaimsToday)
	fmt.Println("rewards today:  ", v.DailyLimit.RewardsClaimedToday)
	fmt.Println("breaker blocked:", v.CircuitBreaker.Blocked)
	return nil
}

func userAction(ctx *cli.Context) error {
	initLogger(ctx)
	user, err := pubkeyArg(ctx, userFlag)
	if err != nil {
		return err
	}

	inst, err := openInstance(ctx)
	if err != nil {
		return err
	}
	defer inst.close()

	us, err := inst.engine.User(user)
	if err != nil {
		return err
	}
	fmt.Println("user:          ", us.Stake.User)
	fmt.Println("staked NFTs:   ", us.Stake.StakedNfts)
	fmt.Println("pending:       ", us.Stake.PendingRewards)
	fmt.Println("claimable now: ", us.ClaimableNow)
	fmt.Println("last update:   ", us.Stake.LastUpdateTimestamp)
	return nil
}

func eventsAction(ctx *cli.Context) error {
	initLogger(ctx)
	inst, err := openInstance(ctx)
	if err != nil {
		return err
	}
	defer inst.close()

	filter := &auditdb.Filter{Limit: ctx.Int(limitFlag.Name)}
	if name := ctx.String(eventNameFlag.Name); name != "" {
		filter.Names = []string{name}
	}
	if raw := ctx.String(userFlag.Name); raw != "" {
		user, err := pubkeyArg(ctx, userFlag)
		if err != nil {
			return err
		}
		filter.User = &user
	}

	recs, err := inst.audit.Query(context.Background(), filter)
	if err != nil {
		return err
	}
	for _, rec := range recs {
		fmt.Printf("%d  %-16s user=%s subject=%s amount=%d ts=%d\n",
			rec.Sequence, rec.Name, rec.User, rec.Subject, rec.Amount, rec.Timestamp)
	}
	return nil
}
